package syntax

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/inkwell-editor/inkwell/buffer"
)

// Association maps a file name or extension to the name of a chroma lexer
// to use for it. FileName and Extension are mutually exclusive; exactly
// one should be set.
type Association struct {
	FileName  string `toml:"file_name"`
	Extension string `toml:"extension"`
	LexerName string `toml:"lexer_name"`
}

// associationsFile is the shape of a user-declared `*.toml` syntax
// definition file: a list of `[[association]]` tables.
type associationsFile struct {
	Associations []Association `toml:"association"`
}

// LoadAssociations decodes the `[[association]]` tables in the TOML file
// at path.
func LoadAssociations(path string) ([]Association, error) {
	var file associationsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, err
	}
	return file.Associations, nil
}

// Registry is the pool of syntax definitions a Workspace resolves buffer
// paths against: chroma's built-in lexer table, augmented by user-declared
// file-name and extension associations loaded from TOML.
//
// Registry implements buffer.SyntaxSet, so it can be passed straight
// through Buffer.Tokens/Workspace.CurrentBufferTokens to ChromaLexer.
type Registry struct {
	byFileName  map[string]string
	byExtension map[string]string
}

// NewRegistry returns an empty Registry. Chroma's built-in lexer table
// remains reachable independently of any registered associations; the
// Registry only needs to hold the overrides a user adds on top of it.
func NewRegistry() *Registry {
	return &Registry{
		byFileName:  make(map[string]string),
		byExtension: make(map[string]string),
	}
}

// Register adds an association, overwriting any existing one for the same
// key.
func (r *Registry) Register(a Association) {
	switch {
	case a.FileName != "":
		r.byFileName[a.FileName] = a.LexerName
	case a.Extension != "":
		r.byExtension[strings.ToLower(strings.TrimPrefix(a.Extension, "."))] = a.LexerName
	}
}

// Resolve attempts to match path's file name, then its extension, against
// registered associations, falling back to chroma's own filename matcher.
// It returns false only when no lexer can be found by any method.
func (r *Registry) Resolve(path string) (buffer.SyntaxDescriptor, bool) {
	name := filepath.Base(path)
	if lexerName, ok := r.byFileName[name]; ok {
		return buffer.SyntaxDescriptor{Name: lexerName}, true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if lexerName, ok := r.byExtension[ext]; ok {
		return buffer.SyntaxDescriptor{Name: lexerName}, true
	}
	if l := lexers.Match(path); l != nil {
		cfg := l.Config()
		if cfg != nil && cfg.Name != "" {
			return buffer.SyntaxDescriptor{Name: cfg.Name}, true
		}
	}
	return buffer.SyntaxDescriptor{}, false
}

// Lookup returns the chroma.Lexer a registered association points name at,
// or nil if name is not one of this Registry's own association targets
// (the caller is expected to also try chroma's global lexer table, which
// this Registry does not duplicate).
func (r *Registry) Lookup(name string) chroma.Lexer {
	for _, lexerName := range r.byFileName {
		if lexerName == name {
			return lexers.Get(lexerName)
		}
	}
	for _, lexerName := range r.byExtension {
		if lexerName == name {
			return lexers.Get(lexerName)
		}
	}
	return nil
}
