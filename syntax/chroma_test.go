package syntax

import (
	"testing"

	"github.com/inkwell-editor/inkwell/buffer"
)

func TestChromaLexerTokenizePositionsMatchSource(t *testing.T) {
	text := "café := 1\n"
	descriptor := buffer.SyntaxDescriptor{Name: "go"}

	stream, err := (ChromaLexer{}).Tokenize(text, descriptor, nil)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if stream.Err() != nil {
		t.Fatalf("Tokenize() stream error = %v", stream.Err())
	}
	tokens := stream.Tokens()
	if len(tokens) == 0 {
		t.Fatalf("Tokenize() produced no tokens")
	}
	for _, tok := range tokens {
		if tok.Position.Line < 0 || tok.Position.Offset < 0 {
			t.Errorf("token %+v has negative position", tok)
		}
	}
}

func TestChromaLexerUnknownDescriptorFails(t *testing.T) {
	_, err := (ChromaLexer{}).Tokenize("text", buffer.SyntaxDescriptor{Name: "not-a-real-lexer-xyz"}, nil)
	if err == nil {
		t.Errorf("Tokenize() with an unresolvable descriptor should fail")
	}
}

func TestScopeStackLowercasesDottedName(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"Keyword", []string{"keyword"}},
		{"String.Double", []string{"string", "double"}},
		{"Other", nil},
	}
	for _, tt := range tests {
		// chroma.TokenType's String() is exercised indirectly through
		// Tokenize above; this checks the lowercasing/splitting logic on
		// dotted names by calling lowercaseDotted directly.
		got := lowercaseDotted(tt.name)
		if len(got) != len(tt.want) {
			t.Errorf("lowercaseDotted(%q) = %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("lowercaseDotted(%q)[%d] = %q, want %q", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}
