// Copyright © 2025 The javals authors

package compiler

import "context"

// Unsupported returns a Facade whose semantic operations all fail with
// ErrUnavailable. The server runs with it when no real compiler front
// end is injected; every query degrades to its lexical-only behavior.
func Unsupported() Facade {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) CompileFocus(context.Context, string, string, int, int) (FocusSession, error) {
	return nil, ErrUnavailable
}

func (unsupported) CompileBatch(context.Context, []string) (BatchSession, error) {
	return nil, ErrUnavailable
}

func (unsupported) AllMembers(TypeMirror) []*Element { return nil }

func (unsupported) DirectSupertypes(TypeMirror) []TypeMirror { return nil }

func (unsupported) IsAssignable(TypeMirror, TypeMirror) bool { return false }

func (unsupported) IsAccessible(*Scope, *Element, TypeMirror) bool { return false }

func (unsupported) TypeElement(string) (*Element, bool) { return nil, false }
