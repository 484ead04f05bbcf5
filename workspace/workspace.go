// Copyright © 2025 The javals authors

// Package workspace is the file store of the analysis core: workspace
// roots, the on-disk source index, and in-memory versioned documents.
// It is the single source of truth for file contents; every later
// stage of a query reads through it.
package workspace

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/javakit/javals/parser"
)

// Info is one source index entry.
type Info struct {
	Modified    time.Time
	PackageName string
}

// Workspace owns all path and document state. Mutating operations and
// index reads are serialized by one exclusive lock; queries snapshot
// file contents once at the start and operate on the snapshot.
type Workspace struct {
	mu      sync.Mutex
	fs      afero.Fs
	roots   []string
	sources map[string]Info
	active  map[string]*VersionedContent
}

// VersionedContent is the in-memory text of an open document.
type VersionedContent struct {
	Text     string
	Version  int32
	Modified time.Time
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithFs sets the filesystem, allowing tests to use an in-memory one.
func WithFs(fs afero.Fs) Option {
	return func(w *Workspace) { w.fs = fs }
}

// New creates an empty workspace over the OS filesystem.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		fs:      afero.NewOsFs(),
		sources: make(map[string]Info),
		active:  make(map[string]*VersionedContent),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// IsJavaFile reports whether the path names a regular Java source
// file. module-info.java is hidden from the index: seeing it would
// flip the downstream compiler into module mode.
func IsJavaFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".java") && name != "module-info.java"
}

// SetWorkspaceRoots replaces the workspace roots. Index entries under
// removed roots are dropped, then each newly added root is walked.
func (w *Workspace) SetWorkspaceRoots(roots []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	newRoots := normalizeRoots(roots)
	for _, old := range w.roots {
		if !containsRoot(newRoots, old) {
			w.dropUnder(old)
		}
	}
	var firstErr error
	for _, root := range newRoots {
		if containsRoot(w.roots, root) {
			continue
		}
		if err := w.addFiles(root); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.roots = newRoots
	return firstErr
}

// Roots returns the current workspace roots.
func (w *Workspace) Roots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.roots))
	copy(out, w.roots)
	return out
}

func normalizeRoots(roots []string) []string {
	var out []string
	for _, r := range roots {
		if !filepath.IsAbs(r) {
			if abs, err := filepath.Abs(r); err == nil {
				r = abs
			}
		}
		out = append(out, filepath.Clean(r))
	}
	sort.Strings(out)
	return out
}

func containsRoot(roots []string, root string) bool {
	for _, r := range roots {
		if r == root {
			return true
		}
	}
	return false
}

func (w *Workspace) dropUnder(root string) {
	for path := range w.sources {
		if isUnder(root, path) {
			delete(w.sources, path)
		}
	}
}

func isUnder(dir, path string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

// addFiles walks a root, indexing every Java source file. Symbolic
// link directories are skipped entirely: following them produces
// cycles and duplicate index entries. A root that does not exist
// contributes no entries.
func (w *Workspace) addFiles(root string) error {
	if _, err := w.fs.Stat(root); os.IsNotExist(err) {
		log.Printf("not scanning %s for java sources: no such directory", root)
		return nil
	}
	return w.walk(root)
}

func (w *Workspace) walk(dir string) error {
	if linked, err := w.isSymlinkDir(dir); err != nil {
		return err
	} else if linked {
		log.Printf("not scanning %s for java sources: symbolic link", dir)
		return nil
	}
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return err
	}
	for _, fi := range entries {
		path := filepath.Join(dir, fi.Name())
		if fi.IsDir() {
			if err := w.walk(path); err != nil {
				return err
			}
			continue
		}
		if IsJavaFile(path) {
			if err := w.readInfoFromDisk(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Workspace) isSymlinkDir(dir string) (bool, error) {
	lstater, ok := w.fs.(afero.Lstater)
	if !ok {
		return false, nil
	}
	fi, lstatCalled, err := lstater.LstatIfPossible(dir)
	if err != nil {
		return false, err
	}
	return lstatCalled && fi.Mode()&os.ModeSymlink != 0, nil
}

// readInfoFromDisk indexes one file: modification time and lexically
// extracted package name. The index is not updated on read failure.
func (w *Workspace) readInfoFromDisk(path string) error {
	fi, err := w.fs.Stat(path)
	if err != nil {
		return err
	}
	f, err := w.fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	pkg := parser.PackageName(bufio.NewReader(f))
	w.sources[path] = Info{Modified: fi.ModTime(), PackageName: pkg}
	return nil
}

// All returns every indexed source path, sorted.
func (w *Workspace) All() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.sources))
	for path := range w.sources {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// List returns the indexed paths whose stored package name equals
// packageName, sorted.
func (w *Workspace) List(packageName string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for path, info := range w.sources {
		if info.PackageName == packageName {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// SourceRoots infers the source roots of the index: for each file, the
// package components are stripped from the tail of its directory
// chain; a mismatch at any step contributes nothing.
func (w *Workspace) SourceRoots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	set := map[string]bool{}
	for path, info := range w.sources {
		if root, ok := sourceRoot(path, info.PackageName); ok {
			set[root] = true
		}
	}
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func sourceRoot(path, packageName string) (string, bool) {
	dir := filepath.Dir(path)
	if packageName == "" {
		return dir, true
	}
	parts := strings.Split(packageName, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if filepath.Base(dir) != parts[i] {
			return "", false
		}
		dir = filepath.Dir(dir)
	}
	return dir, true
}

// Contains reports whether the file is a known Java source, indexing
// it on first sight.
func (w *Workspace) Contains(path string) bool {
	if !IsJavaFile(path) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.sources[path]; ok {
		return true
	}
	return w.readInfoFromDisk(path) == nil
}

// Modified returns the last modification instant of the file: the
// in-memory instant while the document is open, else the on-disk time,
// indexing the file on first sight.
func (w *Workspace) Modified(path string) (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if doc, ok := w.active[URIOf(path)]; ok {
		return doc.Modified, nil
	}
	info, err := w.info(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.Modified, nil
}

// PackageName returns the lexically extracted package name of the
// file, indexing it on first sight.
func (w *Workspace) PackageName(path string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	info, err := w.info(path)
	if err != nil {
		return "", err
	}
	return info.PackageName, nil
}

func (w *Workspace) info(path string) (Info, error) {
	if info, ok := w.sources[path]; ok {
		return info, nil
	}
	if err := w.readInfoFromDisk(path); err != nil {
		return Info{}, err
	}
	return w.sources[path], nil
}

// SuggestedPackageName walks parent directories for a sibling source
// file with a non-empty package name and extends it with the relative
// sub-path. Files whose siblings all live in the default package get
// no suggestion.
func (w *Workspace) SuggestedPackageName(path string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	fileDir := filepath.Dir(path)
	for dir := fileDir; ; dir = filepath.Dir(dir) {
		for _, sibling := range w.sourcesUnder(dir) {
			if sibling == path {
				continue
			}
			pkg := w.sources[sibling].PackageName
			if pkg == "" {
				continue
			}
			if rel, err := filepath.Rel(dir, fileDir); err == nil && rel != "." {
				pkg = pkg + "." + strings.ReplaceAll(rel, string(filepath.Separator), ".")
			}
			return pkg
		}
		if dir == filepath.Dir(dir) {
			return ""
		}
	}
}

// sourcesUnder returns the indexed files directly inside dir, sorted.
func (w *Workspace) sourcesUnder(dir string) []string {
	var out []string
	for path := range w.sources {
		if filepath.Dir(path) == dir {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// ExternalCreate records a file created outside the editor.
func (w *Workspace) ExternalCreate(path string) {
	if !IsJavaFile(path) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.readInfoFromDisk(path); err != nil {
		log.Printf("index %s: %v", path, err)
	}
}

// ExternalChange records a file modified outside the editor.
func (w *Workspace) ExternalChange(path string) {
	if !IsJavaFile(path) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.readInfoFromDisk(path); err != nil {
		log.Printf("index %s: %v", path, err)
	}
}

// ExternalDelete drops a file deleted outside the editor.
func (w *Workspace) ExternalDelete(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sources, path)
}

// Contents returns the authoritative text of the file: the active
// document if open, else the on-disk bytes.
func (w *Workspace) Contents(path string) (string, error) {
	if !IsJavaFile(path) {
		return "", fmt.Errorf("%s is not a java file", path)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if doc, ok := w.active[URIOf(path)]; ok {
		return doc.Text, nil
	}
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ContentsURI is Contents keyed by document URI.
func (w *Workspace) ContentsURI(uri string) (string, error) {
	return w.Contents(PathOf(uri))
}

// Reader returns a buffered reader over the authoritative contents.
func (w *Workspace) Reader(path string) (*bufio.Reader, error) {
	contents, err := w.Contents(path)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(strings.NewReader(contents)), nil
}

// FindDeclaringFile locates the source file declaring the given
// qualified type name: first files in the package named after the
// class, then a lexical scan of every file in the package.
func (w *Workspace) FindDeclaringFile(qualifiedName string) (string, bool) {
	packageName := parser.MostName(qualifiedName)
	className := parser.LastName(qualifiedName)
	inPackage := w.List(packageName)
	for _, f := range inPackage {
		base := strings.TrimSuffix(filepath.Base(f), ".java")
		if base == className && w.containsClass(f, className) {
			return f, true
		}
	}
	for _, f := range inPackage {
		if w.containsClass(f, className) {
			return f, true
		}
	}
	return "", false
}

func (w *Workspace) containsClass(path, className string) bool {
	contents, err := w.Contents(path)
	if err != nil {
		return false
	}
	return parser.ContainsClassString(contents, className)
}
