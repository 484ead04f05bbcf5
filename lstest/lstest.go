// Copyright © 2025 The javals authors

// Package lstest provides shared test fixtures for the analysis core:
// a scriptable in-memory compiler facade and filesystem helpers. It is
// imported only from _test files.
package lstest

import (
	"context"
	"time"

	"github.com/spf13/afero"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/parser"
)

// WriteFiles populates an afero filesystem from a path → contents map.
func WriteFiles(fs afero.Fs, files map[string]string) error {
	for path, contents := range files {
		if err := afero.WriteFile(fs, path, []byte(contents), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// MemFs returns a memory filesystem pre-populated with files.
func MemFs(files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	if err := WriteFiles(fs, files); err != nil {
		panic(err)
	}
	return fs
}

// Touch sets a file's modification time, for index-staleness tests.
func Touch(fs afero.Fs, path string, t time.Time) error {
	return fs.Chtimes(path, t, t)
}

// Pos is a 1-based source position key for scripting session answers.
type Pos struct {
	Line int
	Col  int
}

// Facade is a scriptable compiler facade. Zero value is unusable; use
// NewFacade.
type Facade struct {
	Types      map[string]*compiler.Element
	Supers     map[string][]compiler.TypeMirror
	Assignable map[[2]string]bool
	Denied     map[*compiler.Element]bool

	Focus    *Focus
	FocusErr error
	Batch    *Batch
	BatchErr error

	// FocusContents records the pruned contents passed to the last
	// CompileFocus call, for asserting that queries prune first.
	FocusContents string
}

// NewFacade returns an empty scriptable facade. Every element is
// accessible unless explicitly denied.
func NewFacade() *Facade {
	return &Facade{
		Types:      make(map[string]*compiler.Element),
		Supers:     make(map[string][]compiler.TypeMirror),
		Assignable: make(map[[2]string]bool),
		Denied:     make(map[*compiler.Element]bool),
	}
}

// AddClass registers a class element with the given members and
// returns it. The element's Type is a DeclaredType pointing back at
// the element.
func (f *Facade) AddClass(qualified string, members ...*compiler.Element) *compiler.Element {
	return f.addType(qualified, compiler.KindClass, members...)
}

// AddEnum registers an enum with the given constant names.
func (f *Facade) AddEnum(qualified string, constants ...string) *compiler.Element {
	var members []*compiler.Element
	for _, c := range constants {
		members = append(members, &compiler.Element{
			Name: c,
			Kind: compiler.KindEnumConstant,
			Mods: compiler.Public | compiler.Static | compiler.Final,
		})
	}
	return f.addType(qualified, compiler.KindEnum, members...)
}

// AddInterface registers an interface element.
func (f *Facade) AddInterface(qualified string, members ...*compiler.Element) *compiler.Element {
	return f.addType(qualified, compiler.KindInterface, members...)
}

func (f *Facade) addType(qualified string, kind compiler.ElementKind, members ...*compiler.Element) *compiler.Element {
	el := &compiler.Element{
		Name:          parser.LastName(qualified),
		QualifiedName: qualified,
		Kind:          kind,
		Mods:          compiler.Public,
		Enclosed:      members,
	}
	el.Type = &compiler.DeclaredType{Name: qualified, Elem: el}
	f.Types[qualified] = el
	return el
}

// SetSupertypes declares the direct supertypes of a declared type.
func (f *Facade) SetSupertypes(t compiler.TypeMirror, supers ...compiler.TypeMirror) {
	f.Supers[t.String()] = supers
}

// AllowAssign records that a value of type a is assignable to b.
func (f *Facade) AllowAssign(a, b compiler.TypeMirror) {
	f.Assignable[[2]string{a.String(), b.String()}] = true
}

// Deny marks an element inaccessible from every scope.
func (f *Facade) Deny(e *compiler.Element) {
	f.Denied[e] = true
}

func (f *Facade) CompileFocus(_ context.Context, _, contents string, _, _ int) (compiler.FocusSession, error) {
	f.FocusContents = contents
	if f.FocusErr != nil {
		return nil, f.FocusErr
	}
	if f.Focus == nil {
		return nil, compiler.ErrUnavailable
	}
	return f.Focus, nil
}

func (f *Facade) CompileBatch(context.Context, []string) (compiler.BatchSession, error) {
	if f.BatchErr != nil {
		return nil, f.BatchErr
	}
	if f.Batch == nil {
		return nil, compiler.ErrUnavailable
	}
	return f.Batch, nil
}

func (f *Facade) AllMembers(t compiler.TypeMirror) []*compiler.Element {
	el, ok := compiler.AsElement(t)
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var out []*compiler.Element
	var collect func(e *compiler.Element)
	collect = func(e *compiler.Element) {
		for _, m := range e.Enclosed {
			if !seen[m.String()] {
				seen[m.String()] = true
				out = append(out, m)
			}
		}
		for _, s := range f.Supers[e.QualifiedName] {
			if se, ok := compiler.AsElement(s); ok {
				collect(se)
			}
		}
	}
	collect(el)
	return out
}

func (f *Facade) DirectSupertypes(t compiler.TypeMirror) []compiler.TypeMirror {
	return f.Supers[t.String()]
}

func (f *Facade) IsAssignable(a, b compiler.TypeMirror) bool {
	if a == nil || b == nil {
		return false
	}
	if a.String() == b.String() {
		return true
	}
	return f.Assignable[[2]string{a.String(), b.String()}]
}

func (f *Facade) IsAccessible(_ *compiler.Scope, e *compiler.Element, _ compiler.TypeMirror) bool {
	return !f.Denied[e]
}

func (f *Facade) TypeElement(qualifiedName string) (*compiler.Element, bool) {
	el, ok := f.Types[qualifiedName]
	return el, ok
}

// Focus is a scriptable focus session.
type Focus struct {
	Scp      *compiler.Scope
	Elements map[Pos]*compiler.Element
	TypesAt  map[Pos]compiler.TypeMirror
	Sigs     *compiler.Signatures
	Closed   bool
}

// NewFocus returns an empty focus session over the given scope.
func NewFocus(scope *compiler.Scope) *Focus {
	return &Focus{
		Scp:      scope,
		Elements: make(map[Pos]*compiler.Element),
		TypesAt:  make(map[Pos]compiler.TypeMirror),
	}
}

func (s *Focus) Scope(int, int) (*compiler.Scope, error) {
	if s.Scp == nil {
		return nil, compiler.ErrUnavailable
	}
	return s.Scp, nil
}

func (s *Focus) Element(line, col int) (*compiler.Element, error) {
	if e, ok := s.Elements[Pos{line, col}]; ok {
		return e, nil
	}
	return nil, compiler.ErrUnavailable
}

func (s *Focus) TypeOf(line, col int) (compiler.TypeMirror, error) {
	if t, ok := s.TypesAt[Pos{line, col}]; ok {
		return t, nil
	}
	return nil, compiler.ErrUnavailable
}

func (s *Focus) SignatureHelp(int, int) (*compiler.Signatures, error) {
	if s.Sigs == nil {
		return nil, compiler.ErrUnavailable
	}
	return s.Sigs, nil
}

func (s *Focus) Close() error {
	s.Closed = true
	return nil
}

// Batch is a scriptable batch session.
type Batch struct {
	Diags   []compiler.Diagnostic
	Imports map[string][]string
	Closed  bool
}

func (b *Batch) ReportErrors() ([]compiler.Diagnostic, error) {
	return b.Diags, nil
}

func (b *Batch) FixImports(uri string) ([]string, error) {
	return b.Imports[uri], nil
}

func (b *Batch) Close() error {
	b.Closed = true
	return nil
}

// Element constructors for concise test setup.

// Method returns a public instance method element.
func Method(name string, result compiler.TypeMirror, params ...compiler.TypeMirror) *compiler.Element {
	return &compiler.Element{
		Name: name,
		Kind: compiler.KindMethod,
		Mods: compiler.Public,
		Type: &compiler.ExecutableType{Params: params, Result: result},
	}
}

// StaticMethod returns a public static method element.
func StaticMethod(name string, result compiler.TypeMirror, params ...compiler.TypeMirror) *compiler.Element {
	m := Method(name, result, params...)
	m.Mods |= compiler.Static
	return m
}

// Field returns a public instance field element.
func Field(name string, typ compiler.TypeMirror) *compiler.Element {
	return &compiler.Element{Name: name, Kind: compiler.KindField, Mods: compiler.Public, Type: typ}
}

// StaticField returns a public static field element.
func StaticField(name string, typ compiler.TypeMirror) *compiler.Element {
	f := Field(name, typ)
	f.Mods |= compiler.Static
	return f
}

// Local returns a local-variable element.
func Local(name string, typ compiler.TypeMirror) *compiler.Element {
	return &compiler.Element{Name: name, Kind: compiler.KindLocalVariable, Type: typ}
}

// Param returns a parameter element.
func Param(name string, typ compiler.TypeMirror) *compiler.Element {
	return &compiler.Element{Name: name, Kind: compiler.KindParameter, Type: typ}
}

// This returns the implicit receiver binding for a type.
func This(t compiler.TypeMirror) *compiler.Element {
	return &compiler.Element{Name: "this", Kind: compiler.KindLocalVariable, Type: t}
}

// Super returns the implicit super binding for a type.
func Super(t compiler.TypeMirror) *compiler.Element {
	return &compiler.Element{Name: "super", Kind: compiler.KindLocalVariable, Type: t}
}

// Primitive returns the named primitive type.
func Primitive(name string) compiler.TypeMirror {
	return &compiler.PrimitiveType{Name: name}
}
