// Copyright © 2025 The javals authors

// Package diagnostic renders compiler diagnostics as annotated source
// snippets for CLI output. Source lines are read through the caller's
// content resolver so that in-memory document versions are displayed,
// not stale disk contents.
package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/javakit/javals/compiler"
)

// messageWidth bounds the header line; long compiler messages wrap
// instead of running off the terminal.
const messageWidth = 100

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Source resolves a URI to its authoritative contents. If nil,
	// the file is read from disk.
	Source func(uri string) (string, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d compiler.Diagnostic) error {
	var file *os.File
	if f, ok := w.(*os.File); ok {
		file = f
	}
	p := choosePalette(r.Color, file)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	r.writeSnippet(ew, d, p)

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []compiler.Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter captures the first write error and short-circuits the
// rest, avoiding a check on every printf.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) writeHeader(ew *errWriter, d compiler.Diagnostic, p palette) {
	sevColor := p.boldCyan
	switch d.Severity {
	case compiler.SeverityError:
		sevColor = p.boldRed
	case compiler.SeverityWarning:
		sevColor = p.yellow
	}
	msg := d.Message
	if d.Code != "" {
		msg = msg + " [" + d.Code + "]"
	}
	wrapped := wordwrap.String(msg, messageWidth)
	lines := strings.Split(wrapped, "\n")
	ew.printf("%s%s%s:%s %s%s%s\n",
		sevColor, d.Severity, p.reset, p.reset, p.bold, lines[0], p.reset)
	if len(lines) > 1 {
		rest := strings.Join(lines[1:], "\n")
		ew.print(indent.String(rest, 4))
		ew.print("\n")
	}
}

func (r *Renderer) writeSnippet(ew *errWriter, d compiler.Diagnostic, p palette) {
	loc := d.URI
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Line)
		if d.Col > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source := r.sourceLine(d.URI, d.Line)
	if source == "" {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := fmt.Sprintf("%d", d.Line)
	pad := strings.Repeat(" ", len(lineStr))
	display := strings.ReplaceAll(source, "\t", "    ")

	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, lineStr, p.reset, display)

	col := d.Col
	if col <= 0 {
		col = 1
	}
	prefix := ""
	if col-1 <= len(source) {
		prefix = source[:col-1]
	}
	caretPad := strings.Repeat(" ", displayWidth(prefix))
	ew.printf(" %s%s |%s  %s%s^%s\n", p.boldBlue, pad, p.reset, caretPad, p.boldRed, p.reset)
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

func (r *Renderer) sourceLine(uri string, line int) string {
	if line <= 0 || uri == "" {
		return ""
	}
	var contents string
	if r.Source != nil {
		c, err := r.Source(uri)
		if err != nil {
			return ""
		}
		contents = c
	} else {
		data, err := os.ReadFile(strings.TrimPrefix(uri, "file://"))
		if err != nil {
			return ""
		}
		contents = string(data)
	}
	for i, l := range strings.Split(contents, "\n") {
		if i+1 == line {
			return l
		}
	}
	return ""
}

// displayWidth returns the display width of a string, expanding tabs
// to 4 spaces.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}
