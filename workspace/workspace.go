// Package workspace owns a set of open buffers, tracks which one is
// current, and resolves buffer paths relative to a canonical root.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-editor/inkwell/buffer"
	"github.com/inkwell-editor/inkwell/config"
	"github.com/inkwell-editor/inkwell/syntax"
)

// OptionalPath is the result of a lookup that may have no path, mirroring
// the Buffer methods it wraps.
type OptionalPath struct {
	Path string
	Ok   bool
}

// Workspace owns a sequence of Buffers in insertion order, a current
// selection, a canonical root, and a syntax definition registry.
type Workspace struct {
	root string

	buffers      []*buffer.Buffer
	currentIndex int
	hasCurrent   bool
	nextID       int

	registry *syntax.Registry
	lexer    buffer.Lexer

	settings     config.Settings
	settingsPath string
	hasSettings  bool
}

// New canonicalizes rootPath and returns an empty Workspace. If settings
// is non-nil, each of its SyntaxPaths is walked for `*.toml`-defined
// syntax associations, merged into the registry alongside chroma's
// built-in lexer table, and its RecentRoots is updated (and, when
// settingsPath is non-empty, persisted) to include root.
func New(rootPath string, settings *config.Settings, settingsPath string) (*Workspace, error) {
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, &buffer.IoFailure{Op: "workspace.new", Err: err}
	}

	w := &Workspace{
		root:         root,
		currentIndex: -1,
		registry:     syntax.NewRegistry(),
		lexer:        syntax.ChromaLexer{},
	}

	if settings != nil {
		w.settings = *settings
		w.hasSettings = true
		w.settingsPath = settingsPath

		if err := w.loadSyntaxPaths(settings.SyntaxPaths); err != nil {
			return nil, err
		}

		w.settings.AddRecentRoot(root)
		if settingsPath != "" {
			if err := config.Save(settingsPath, w.settings); err != nil {
				return nil, err
			}
		}
	}

	return w, nil
}

// loadSyntaxPaths walks each of paths for `*.toml` syntax-association
// files and registers every association found. A path may name a single
// `.toml` file directly, or a directory to walk recursively. A path that
// does not exist is skipped, matching config.Load's tolerance for absent
// configuration; a `.toml` file that exists but fails to parse is an
// error, since that reflects a mistake in a file the user deliberately
// pointed at.
func (w *Workspace) loadSyntaxPaths(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return &buffer.IoFailure{Op: "load_syntax_path", Err: err}
		}

		if !info.IsDir() {
			if err := w.registerAssociationsFile(path); err != nil {
				return err
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || strings.ToLower(filepath.Ext(p)) != ".toml" {
				return nil
			}
			return w.registerAssociationsFile(p)
		})
		if err != nil {
			return &buffer.IoFailure{Op: "load_syntax_path", Err: err}
		}
	}
	return nil
}

func (w *Workspace) registerAssociationsFile(path string) error {
	associations, err := syntax.LoadAssociations(path)
	if err != nil {
		return &buffer.IoFailure{Op: "load_syntax_path", Err: err}
	}
	for _, a := range associations {
		w.registry.Register(a)
	}
	return nil
}

// Root returns the workspace's canonical root path.
func (w *Workspace) Root() string {
	return w.root
}

// AddBuffer assigns b a fresh id, attempts to resolve its syntax
// descriptor by file name then extension, appends it, and makes it
// current. It fails with DuplicateBufferPath if b's path already belongs
// to a buffer already in this Workspace.
func (w *Workspace) AddBuffer(b *buffer.Buffer) (int, error) {
	if path, ok := b.Path(); ok {
		if w.bufferIndexForPath(path) >= 0 {
			return 0, &buffer.DuplicateBufferPath{Path: path}
		}
	}

	id := w.nextID
	w.nextID++
	b.AssignID(id)

	if path, ok := b.Path(); ok {
		if descriptor, ok := w.registry.Resolve(path); ok {
			b.SetSyntaxDescriptor(descriptor)
		}
	}

	w.buffers = append(w.buffers, b)
	w.currentIndex = len(w.buffers) - 1
	w.hasCurrent = true
	return id, nil
}

// bufferIndexForPath returns the index of the buffer whose canonical path
// equals path, or -1.
func (w *Workspace) bufferIndexForPath(path string) int {
	for i, b := range w.buffers {
		if p, ok := b.Path(); ok && p == path {
			return i
		}
	}
	return -1
}

// OpenBuffer selects the existing buffer for path if one is already open,
// otherwise loads path into a new Buffer and adds it. Returns the buffer's
// id either way.
func (w *Workspace) OpenBuffer(path string) (int, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return 0, &buffer.IoFailure{Op: "open_buffer", Err: err}
	}

	if idx := w.bufferIndexForPath(canonical); idx >= 0 {
		w.currentIndex = idx
		w.hasCurrent = true
		id, _ := w.buffers[idx].ID()
		return id, nil
	}

	b, err := buffer.NewBufferFromFile(canonical)
	if err != nil {
		return 0, err
	}
	return w.AddBuffer(b)
}

// CloseCurrentBuffer removes the current buffer. The new current becomes
// the previous sibling if one exists, otherwise the buffer that slid into
// the same index, otherwise none.
func (w *Workspace) CloseCurrentBuffer() bool {
	if !w.hasCurrent {
		return false
	}
	idx := w.currentIndex
	w.buffers = append(w.buffers[:idx], w.buffers[idx+1:]...)

	switch {
	case len(w.buffers) == 0:
		w.currentIndex = -1
		w.hasCurrent = false
	case idx > 0:
		w.currentIndex = idx - 1
	default:
		w.currentIndex = 0
	}
	return true
}

// SelectNext moves the current selection forward, wrapping around.
func (w *Workspace) SelectNext() bool {
	if len(w.buffers) == 0 {
		return false
	}
	w.currentIndex = (w.currentIndex + 1) % len(w.buffers)
	w.hasCurrent = true
	return true
}

// SelectPrevious moves the current selection backward, wrapping around.
func (w *Workspace) SelectPrevious() bool {
	if len(w.buffers) == 0 {
		return false
	}
	w.currentIndex = (w.currentIndex - 1 + len(w.buffers)) % len(w.buffers)
	w.hasCurrent = true
	return true
}

// CurrentBuffer returns the selected Buffer, if any.
func (w *Workspace) CurrentBuffer() (*buffer.Buffer, bool) {
	if !w.hasCurrent {
		return nil, false
	}
	return w.buffers[w.currentIndex], true
}

// CurrentBufferIndex returns the index of the selected Buffer, if any.
func (w *Workspace) CurrentBufferIndex() (int, bool) {
	return w.currentIndex, w.hasCurrent
}

// CurrentBufferPath returns the current buffer's path relative to the
// workspace root when possible, else its canonical path as-is.
func (w *Workspace) CurrentBufferPath() (string, bool) {
	b, ok := w.CurrentBuffer()
	if !ok {
		return "", false
	}
	return w.relativePath(b)
}

func (w *Workspace) relativePath(b *buffer.Buffer) (string, bool) {
	path, ok := b.Path()
	if !ok {
		return "", false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path, true
	}
	return rel, true
}

// BufferPaths returns each buffer's path, relative to the workspace root
// when possible, in insertion order.
func (w *Workspace) BufferPaths() []OptionalPath {
	paths := make([]OptionalPath, len(w.buffers))
	for i, b := range w.buffers {
		p, ok := w.relativePath(b)
		paths[i] = OptionalPath{Path: p, Ok: ok}
	}
	return paths
}

// UpdateCurrentSyntax re-resolves the syntax definition for the current
// buffer, used after its path changes.
func (w *Workspace) UpdateCurrentSyntax() {
	b, ok := w.CurrentBuffer()
	if !ok {
		return
	}
	path, ok := b.Path()
	if !ok {
		b.ClearSyntaxDescriptor()
		return
	}
	if descriptor, ok := w.registry.Resolve(path); ok {
		b.SetSyntaxDescriptor(descriptor)
	} else {
		b.ClearSyntaxDescriptor()
	}
}

// CurrentBufferTokens routes the current buffer's text and syntax
// descriptor, plus the workspace's syntax registry, through the lexer.
func (w *Workspace) CurrentBufferTokens() (buffer.TokenStream, error) {
	b, ok := w.CurrentBuffer()
	if !ok {
		return nil, &buffer.MissingSyntaxDefinition{}
	}
	return b.Tokens(w.lexer, w.registry)
}

// Registry exposes the workspace's syntax definition pool, e.g. so an
// embedder can register additional associations before edits begin.
func (w *Workspace) Registry() *syntax.Registry {
	return w.registry
}
