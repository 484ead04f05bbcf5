// Copyright © 2025 The javals authors

package compiler

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by facade implementations that cannot
// perform semantic analysis. Callers treat it as a resolution failure:
// the query degrades to an empty or lexical-only result.
var ErrUnavailable = errors.New("semantic compiler unavailable")

// Severity of a reported diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// Diagnostic is one compiler finding, positioned 1-based against the
// original (unpruned) source.
type Diagnostic struct {
	URI      string
	Line     int
	Col      int
	Severity Severity
	Code     string
	Message  string
}

// Signature describes one overload for signature help.
type Signature struct {
	Label  string
	Params []string
	Doc    string
}

// Signatures is the result of a signature-help query.
type Signatures struct {
	List        []Signature
	Active      int
	ActiveParam int
}

// FocusSession is a compilation scoped to one cursor location,
// typically operating on pruned source. It is a scoped resource:
// acquired at the start of a query and closed on every exit path.
type FocusSession interface {
	// Scope returns the lexical scope chain at the 1-based position.
	Scope(line, col int) (*Scope, error)
	// Element resolves the element under or immediately left of the
	// position.
	Element(line, col int) (*Element, error)
	// TypeOf returns the type of the expression ending at the
	// position.
	TypeOf(line, col int) (TypeMirror, error)
	// SignatureHelp returns the overloads of the invocation enclosing
	// the position.
	SignatureHelp(line, col int) (*Signatures, error)
	Close() error
}

// BatchSession is a compilation over a set of files.
type BatchSession interface {
	// ReportErrors returns the diagnostics of the batch.
	ReportErrors() ([]Diagnostic, error)
	// FixImports returns the qualified names that resolve the
	// unimported references of the given file.
	FixImports(uri string) ([]string, error)
	Close() error
}

// Facade is the abstract compiler boundary the analysis core depends
// on. A session compiles either a pruned neighborhood (focus) or whole
// files (batch); the relational queries (members, supertypes,
// assignability, accessibility) are session independent.
type Facade interface {
	// CompileFocus compiles the given (typically pruned) contents of
	// uri around the 1-based cursor.
	CompileFocus(ctx context.Context, uri, contents string, line, col int) (FocusSession, error)
	// CompileBatch compiles the given files.
	CompileBatch(ctx context.Context, uris []string) (BatchSession, error)

	// AllMembers returns the members of t including inherited ones.
	AllMembers(t TypeMirror) []*Element
	// DirectSupertypes returns the immediate supertypes of t.
	DirectSupertypes(t TypeMirror) []TypeMirror
	// IsAssignable reports whether a value of type a is assignable to b.
	IsAssignable(a, b TypeMirror) bool
	// IsAccessible reports whether e is accessible from scope s. The
	// optional owner is the receiver type of a member access.
	IsAccessible(s *Scope, e *Element, owner TypeMirror) bool
	// TypeElement resolves a qualified type name.
	TypeElement(qualifiedName string) (*Element, bool)
}

// ObjectType is the implicit root class type every reference type
// extends; member completion adds it to the supertype closure so that
// equals, hashCode, and friends always appear.
func ObjectType(f Facade) TypeMirror {
	if el, ok := f.TypeElement("java.lang.Object"); ok && el.Type != nil {
		return el.Type
	}
	return &DeclaredType{Name: "java.lang.Object"}
}
