// Copyright © 2025 The javals authors

package workspace

import (
	"log"
	"sort"
	"strings"
	"time"
)

// Edit is one element of a didChange batch: either a full text
// replacement (HasRange false) or a range patch.
type Edit struct {
	Text        string
	HasRange    bool
	StartLine   int // 0-based, protocol convention
	StartChar   int
	RangeLength int
}

// Open records an in-memory document version for the URI.
func (w *Workspace) Open(uri, text string, version int32) {
	if !IsJavaFile(PathOf(uri)) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active[uri] = &VersionedContent{Text: text, Version: version, Modified: time.Now()}
}

// Change applies an ordered list of edits to an open document. A
// change whose version is not newer than the stored one is logged and
// dropped, leaving the text untouched.
func (w *Workspace) Change(uri string, version int32, edits []Edit) {
	if !IsJavaFile(PathOf(uri)) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	existing, ok := w.active[uri]
	if !ok {
		log.Printf("change for %s ignored: document not open", uri)
		return
	}
	if version <= existing.Version {
		log.Printf("ignored change with version %d <= %d", version, existing.Version)
		return
	}
	text := existing.Text
	for _, e := range edits {
		if !e.HasRange {
			text = e.Text
		} else {
			text = patch(text, e)
		}
	}
	w.active[uri] = &VersionedContent{Text: text, Version: version, Modified: time.Now()}
}

// Close discards the in-memory document; the on-disk contents become
// authoritative again.
func (w *Workspace) Close(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.active, uri)
}

// ActiveURIs returns the URIs of all open documents, sorted.
func (w *Workspace) ActiveURIs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.active))
	for uri := range w.active {
		out = append(out, uri)
	}
	sort.Strings(out)
	return out
}

// Version returns the stored version of an open document, or -1.
func (w *Workspace) Version(uri string) int32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if doc, ok := w.active[uri]; ok {
		return doc.Version
	}
	return -1
}

// patch replaces RangeLength bytes starting at (StartLine, StartChar)
// with the edit text, treating the document as newline-separated
// lines.
func patch(text string, e Edit) string {
	var b strings.Builder
	b.Grow(len(text) + len(e.Text))
	pos := 0

	// Skip unchanged lines.
	for line := 0; line < e.StartLine && pos < len(text); line++ {
		nl := strings.IndexByte(text[pos:], '\n')
		if nl < 0 {
			pos = len(text)
			break
		}
		b.WriteString(text[pos : pos+nl+1])
		pos += nl + 1
	}
	// Skip unchanged characters on the start line.
	for c := 0; c < e.StartChar && pos < len(text); c++ {
		b.WriteByte(text[pos])
		pos++
	}
	// Write the replacement, skip the replaced range, keep the rest.
	b.WriteString(e.Text)
	pos += e.RangeLength
	if pos < len(text) {
		b.WriteString(text[pos:])
	}
	return b.String()
}
