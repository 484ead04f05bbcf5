// Copyright © 2025 The javals authors

package complete

import (
	"context"
	"log"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/parser"
	"github.com/javakit/javals/prune"
	"github.com/javakit/javals/workspace"
)

// DefaultMaxItems caps candidate assembly; the editor cannot usefully
// show more, and unbounded scans of the class catalogs are slow.
const DefaultMaxItems = 50

// Engine answers completion queries against one workspace and one
// compiler facade. The class catalogs are enumerations of fully
// qualified names populated by an external indexer.
type Engine struct {
	Workspace        *workspace.Workspace
	Facade           compiler.Facade
	JDKClasses       []string
	ClassPathClasses []string
	MaxItems         int
}

// NewEngine returns an engine with the default candidate cap.
func NewEngine(ws *workspace.Workspace, f compiler.Facade) *Engine {
	return &Engine{Workspace: ws, Facade: f, MaxItems: DefaultMaxItems}
}

// At assembles completion candidates for the 1-based cursor. IO
// failures are fatal; resolution failures produce a partial (possibly
// empty) list; cancellation returns ctx.Err().
func (e *Engine) At(ctx context.Context, uri string, line, col int) ([]Candidate, error) {
	path := workspace.PathOf(uri)
	contents, err := e.Workspace.Contents(path)
	if err != nil {
		return nil, err
	}
	tree := parser.Parse(path, contents)
	cc := tree.Context(line, col)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pruned := prune.AroundCursor(tree, line, col)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var focus compiler.FocusSession
	if sess, err := e.Facade.CompileFocus(ctx, uri, pruned, line, col); err != nil {
		log.Printf("focus compilation of %s failed: %v", uri, err)
	} else {
		focus = sess
		defer sess.Close()
	}

	a := &assembly{engine: e, ctx: ctx, tree: tree, path: path, cc: cc, seen: map[string]bool{}}
	switch {
	case cc.IsCase:
		a.completeCases(focus, line, col)
	case cc.IsAnnotation:
		a.completeAnnotations(focus, line, col)
	case cc.IsImport:
		a.completeImports(line, col)
	case cc.IsMember:
		a.completeMembers(focus, line, col)
	default:
		a.completeIdentifiers(focus, line, col)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.list, nil
}

// SignatureHelp returns the overloads of the invocation enclosing the
// cursor, via a focus compilation of the pruned neighborhood.
func (e *Engine) SignatureHelp(ctx context.Context, uri string, line, col int) (*compiler.Signatures, error) {
	path := workspace.PathOf(uri)
	contents, err := e.Workspace.Contents(path)
	if err != nil {
		return nil, err
	}
	tree := parser.Parse(path, contents)
	pruned := prune.AroundCursor(tree, line, col)

	sess, err := e.Facade.CompileFocus(ctx, uri, pruned, line, col)
	if err != nil {
		log.Printf("focus compilation of %s failed: %v", uri, err)
		return nil, nil
	}
	defer sess.Close()
	sigs, err := sess.SignatureHelp(line, col)
	if err != nil {
		return nil, nil
	}
	return sigs, nil
}

// FixImports returns the qualified names resolving the unimported
// references of the file.
func (e *Engine) FixImports(ctx context.Context, uri string) ([]string, error) {
	batch, err := e.Facade.CompileBatch(ctx, []string{uri})
	if err != nil {
		log.Printf("batch compilation of %s failed: %v", uri, err)
		return nil, nil
	}
	defer batch.Close()
	names, err := batch.FixImports(uri)
	if err != nil {
		return nil, nil
	}
	return names, nil
}

// Diagnostics compiles the given files and reports their diagnostics.
func (e *Engine) Diagnostics(ctx context.Context, uris []string) ([]compiler.Diagnostic, error) {
	batch, err := e.Facade.CompileBatch(ctx, uris)
	if err != nil {
		log.Printf("batch compilation failed: %v", err)
		return nil, nil
	}
	defer batch.Close()
	return batch.ReportErrors()
}

func (e *Engine) maxItems() int {
	if e.MaxItems > 0 {
		return e.MaxItems
	}
	return DefaultMaxItems
}

// assembly accumulates candidates for one query, enforcing the cap,
// deduplication, and the cancellation checks.
type assembly struct {
	engine *Engine
	ctx    context.Context
	tree   *parser.Tree
	path   string
	cc     parser.Context

	list   []Candidate
	seen   map[string]bool
	warned bool
}

// add appends a candidate unless the assembly is full, cancelled, or
// has already seen it. It reports whether assembly may continue.
func (a *assembly) add(c Candidate) bool {
	if a.ctx.Err() != nil {
		return false
	}
	if a.full() {
		return false
	}
	key := c.dedupKey()
	if a.seen[key] {
		return true
	}
	a.seen[key] = true
	a.list = append(a.list, c)
	return true
}

// full reports whether the cap is reached, warning once per query.
func (a *assembly) full() bool {
	if len(a.list) < a.engine.maxItems() {
		return false
	}
	if !a.warned {
		a.warned = true
		log.Printf("completion list hit the cap of %d items", a.engine.maxItems())
	}
	return true
}

func (a *assembly) cancelled() bool {
	return a.ctx.Err() != nil
}

// scope fetches the focus session's scope, tolerating a nil session.
func (a *assembly) scope(focus compiler.FocusSession, line, col int) *compiler.Scope {
	if focus == nil {
		return nil
	}
	s, err := focus.Scope(line, col)
	if err != nil {
		return nil
	}
	return s
}
