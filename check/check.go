// Copyright © 2025 The javals authors

// Package check re-derives the type of an expression to the left of a
// cursor using only a scope chain and the small expression grammar,
// for the cases where the pruned compilation did not reach it.
package check

import (
	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/parser"
)

// Checker types expressions of the supported grammar against a scope.
// It holds no compilation state beyond the scope it was given.
type Checker struct {
	f     compiler.Facade
	scope *compiler.Scope

	retainedKind parser.Kind
	retainedType compiler.TypeMirror
	retained     bool
}

// New returns a Checker over the given facade and scope.
func New(f compiler.Facade, scope *compiler.Scope) *Checker {
	return &Checker{f: f, scope: scope}
}

// WithRetained plugs in a (kind, type) answer from a prior compilation
// for the one subtree the grammar cannot check.
func (c *Checker) WithRetained(kind parser.Kind, typ compiler.TypeMirror) *Checker {
	c.retainedKind = kind
	c.retainedType = typ
	c.retained = true
	return c
}

// Check returns the type of e, or false when the expression cannot be
// resolved. Unsupported subtrees yield the retained type when their
// kind matches, else fail.
func (c *Checker) Check(e parser.Expr) (compiler.TypeMirror, bool) {
	if !CanCheck(e) {
		if c.retained && e.ExprKind() == c.retainedKind {
			return c.retainedType, true
		}
		return compiler.NoType{}, false
	}
	switch e := e.(type) {
	case *parser.Ident:
		return c.env(e.Name)
	case *parser.Select:
		return c.member(e)
	case *parser.Invoke:
		return c.invoke(e)
	case *parser.Index:
		x, ok := c.Check(e.X)
		if !ok {
			return compiler.NoType{}, false
		}
		arr, ok := x.(*compiler.ArrayType)
		if !ok {
			return compiler.NoType{}, false
		}
		return arr.Component, true
	case *parser.Cond:
		// The true branch decides; consumers treat the result as a
		// hint, and the reference behaves identically.
		return c.Check(e.Then)
	case *parser.Paren:
		return c.Check(e.X)
	default:
		return compiler.NoType{}, false
	}
}

// env resolves an identifier through the scope chain, preferring
// non-method bindings, and unwrapping the members of this and super.
func (c *Checker) env(name string) (compiler.TypeMirror, bool) {
	for s := c.scope; s != nil; s = s.Parent {
		for _, t := range c.members(s, name) {
			if _, isMethod := t.(*compiler.ExecutableType); !isMethod {
				return t, true
			}
		}
	}
	return compiler.NoType{}, false
}

// members returns the types of the scope's local bindings with the
// given name, including members reachable through this and super.
func (c *Checker) members(s *compiler.Scope, name string) []compiler.TypeMirror {
	var list []compiler.TypeMirror
	for _, el := range s.Locals {
		if el.Name == name && el.Type != nil {
			list = append(list, el.Type)
		}
		if el.IsThisOrSuper() {
			for _, m := range c.f.AllMembers(el.Type) {
				if m.Name == name && m.Type != nil {
					list = append(list, m.Type)
				}
			}
		}
	}
	return list
}

// envMethods collects every executable binding with the given name
// across the scope chain.
func (c *Checker) envMethods(name string) []*compiler.ExecutableType {
	var matches []*compiler.ExecutableType
	for s := c.scope; s != nil; s = s.Parent {
		for _, t := range c.members(s, name) {
			if et, ok := t.(*compiler.ExecutableType); ok {
				matches = append(matches, et)
			}
		}
	}
	return matches
}

// member resolves `X.Name` to the type of the first non-method member.
func (c *Checker) member(e *parser.Select) (compiler.TypeMirror, bool) {
	x, ok := c.Check(e.X)
	if !ok {
		return compiler.NoType{}, false
	}
	if _, ok := compiler.AsElement(x); !ok {
		return compiler.NoType{}, false
	}
	for _, m := range c.f.AllMembers(x) {
		if m.Name == e.Name && !m.Kind.IsExecutable() && m.Type != nil {
			return m.Type, true
		}
	}
	return compiler.NoType{}, false
}

// overloads gathers the candidate methods of an invocation callee.
func (c *Checker) overloads(fun parser.Expr) []*compiler.ExecutableType {
	switch fun := fun.(type) {
	case *parser.Ident:
		return c.envMethods(fun.Name)
	case *parser.Select:
		x, ok := c.Check(fun.X)
		if !ok {
			return nil
		}
		if _, ok := compiler.AsElement(x); !ok {
			return nil
		}
		var matches []*compiler.ExecutableType
		for _, m := range c.f.AllMembers(x) {
			if m.Name == fun.Name && m.Kind == compiler.KindMethod {
				if et, ok := m.Type.(*compiler.ExecutableType); ok {
					matches = append(matches, et)
				}
			}
		}
		return matches
	default:
		return nil
	}
}

func (c *Checker) invoke(e *parser.Invoke) (compiler.TypeMirror, bool) {
	overloads := c.overloads(e.Fun)
	// With a single overload the argument types never matter.
	if len(overloads) == 1 {
		return result(overloads[0])
	}
	args := make([]compiler.TypeMirror, len(e.Args))
	for i, a := range e.Args {
		t, ok := c.Check(a)
		if !ok {
			t = compiler.NoType{}
		}
		args[i] = t
	}
	for _, m := range overloads {
		if c.compatible(m, args) {
			return result(m)
		}
	}
	return compiler.NoType{}, false
}

func result(et *compiler.ExecutableType) (compiler.TypeMirror, bool) {
	if et.Result == nil {
		return compiler.NoType{}, true
	}
	return et.Result, true
}

func (c *Checker) compatible(m *compiler.ExecutableType, args []compiler.TypeMirror) bool {
	if len(m.Params) != len(args) {
		return false
	}
	for i, p := range m.Params {
		if !c.f.IsAssignable(args[i], p) {
			return false
		}
	}
	return true
}

// CanCheck reports whether the expression is within the supported
// grammar. Invocations require a checkable callee and checkable
// arguments.
func CanCheck(e parser.Expr) bool {
	switch e := e.(type) {
	case *parser.Ident, *parser.Select, *parser.Index,
		*parser.Cond, *parser.Paren:
		return true
	case *parser.Invoke:
		if !CanCheck(e.Fun) {
			return false
		}
		for _, a := range e.Args {
			if !CanCheck(a) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CantCheck descends into the expression left of the 1-based cursor
// and returns the deepest subtree outside the supported grammar. The
// caller re-enters full compilation for that subtree and supplies the
// result via WithRetained. A false result means the whole expression
// is checkable (or there is no expression at all).
func CantCheck(tree *parser.Tree, line, col int) (parser.Expr, bool) {
	e, ok := tree.ExprBeforeCursor(line, col)
	if !ok {
		return nil, false
	}
	return findCantCheck(e)
}

func findCantCheck(e parser.Expr) (parser.Expr, bool) {
	if !CanCheck(e) {
		return e, true
	}
	switch e := e.(type) {
	case *parser.Index:
		return findCantCheck(e.X)
	case *parser.Cond:
		return findCantCheck(e.Then)
	case *parser.Select:
		return findCantCheck(e.X)
	case *parser.Invoke:
		// CanCheck already guaranteed callee and arguments check.
		return nil, false
	case *parser.Paren:
		return findCantCheck(e.X)
	default:
		return nil, false
	}
}
