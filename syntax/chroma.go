// Package syntax ships a concrete Lexer adapter over chroma, the default,
// swappable tokenizer a caller may hand to a Buffer.
package syntax

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/inkwell-editor/inkwell/buffer"
)

// ChromaLexer adapts github.com/alecthomas/chroma/v2 to the buffer.Lexer
// interface, resolving a lexer by name (or by filename when the
// descriptor's Name looks like one) and converting chroma's byte-indexed
// token positions into grapheme-cluster Positions.
type ChromaLexer struct{}

// Tokenize implements buffer.Lexer.
func (ChromaLexer) Tokenize(text string, descriptor buffer.SyntaxDescriptor, set buffer.SyntaxSet) (buffer.TokenStream, error) {
	lexer := resolveLexer(descriptor, set)
	if lexer == nil {
		return nil, fmt.Errorf("syntax: no chroma lexer for %q", descriptor.Name)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return &chromaTokenStream{err: fmt.Errorf("syntax: tokenise failed: %w", err)}, nil
	}

	stream := &chromaTokenStream{}
	pos := buffer.Position{}
	for _, tok := range iterator.Tokens() {
		stream.tokens = append(stream.tokens, buffer.Token{
			Position:   pos,
			ScopeStack: scopeStack(tok.Type),
		})
		pos = pos.Add(buffer.DistanceOf(tok.Value))
	}
	return stream, nil
}

// resolveLexer tries the descriptor's Name as a registered lexer name
// first (aliases like "go", "python"), then as a filename (so extensions
// and names like "Makefile" resolve the way lexers.Match expects).
func resolveLexer(descriptor buffer.SyntaxDescriptor, set buffer.SyntaxSet) chroma.Lexer {
	if reg, ok := set.(*Registry); ok && reg != nil {
		if l := reg.Lookup(descriptor.Name); l != nil {
			return l
		}
	}
	if l := lexers.Get(descriptor.Name); l != nil {
		return l
	}
	return lexers.Match(descriptor.Name)
}

// scopeStack converts a chroma token type's name into a lowercase scope
// path, splitting on dots. Chroma's TokenType names are undotted CamelCase
// (e.g. "LiteralStringDouble"), so the result is a one-element stack such
// as ["literalstringdouble"]; the CamelCase parts are not split apart.
func scopeStack(t chroma.TokenType) []string {
	return lowercaseDotted(t.String())
}

// lowercaseDotted splits a dotted type name into a lowercase scope path.
func lowercaseDotted(name string) []string {
	if name == "" || name == "Other" {
		return nil
	}
	parts := strings.Split(name, ".")
	scopes := make([]string, len(parts))
	for i, p := range parts {
		scopes[i] = strings.ToLower(p)
	}
	return scopes
}

type chromaTokenStream struct {
	tokens []buffer.Token
	err    error
}

func (s *chromaTokenStream) Tokens() []buffer.Token { return s.tokens }
func (s *chromaTokenStream) Err() error             { return s.err }
