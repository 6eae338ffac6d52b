package buffer

import "fmt"

// PathMissing is returned by Save or Reload when the Buffer has no path
// configured.
type PathMissing struct{}

func (e *PathMissing) Error() string { return "buffer: no path configured" }

// IoFailure wraps an underlying filesystem error encountered during Save,
// Reload, or file-backed construction.
type IoFailure struct {
	Op  string
	Err error
}

func (e *IoFailure) Error() string {
	return fmt.Sprintf("buffer: %s: %v", e.Op, e.Err)
}

func (e *IoFailure) Unwrap() error { return e.Err }

// MissingSyntaxDefinition is returned by Tokens when the Buffer has no
// syntax descriptor configured.
type MissingSyntaxDefinition struct{}

func (e *MissingSyntaxDefinition) Error() string {
	return "buffer: no syntax definition configured"
}

// LexerFailure wraps an error surfaced by the external lexer collaborator.
type LexerFailure struct {
	Err error
}

func (e *LexerFailure) Error() string {
	return fmt.Sprintf("buffer: lexer failed: %v", e.Err)
}

func (e *LexerFailure) Unwrap() error { return e.Err }

// DuplicateBufferPath is returned by Workspace.AddBuffer when the Buffer
// being added already has an open counterpart at the same canonical path.
// OpenBuffer never triggers it directly, since it selects the existing
// buffer instead of adding a second one for the same path; it exists for
// callers that build Buffers themselves and add them straight to a
// Workspace.
type DuplicateBufferPath struct {
	Path string
}

func (e *DuplicateBufferPath) Error() string {
	return fmt.Sprintf("buffer: path already open: %s", e.Path)
}
