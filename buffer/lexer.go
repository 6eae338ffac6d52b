package buffer

// SyntaxDescriptor is an opaque reference to a syntax definition, resolved
// by a Workspace and attached to a Buffer. The core never inspects its
// fields; only a Lexer implementation and the syntax-definition pool
// understand what Name means.
type SyntaxDescriptor struct {
	Name string
}

// SyntaxSet is the pool of syntax definitions a Lexer may need to resolve a
// SyntaxDescriptor. The core treats it as opaque and passes it through.
type SyntaxSet any

// Token is one lexical unit of a tokenized document: a position (in
// grapheme clusters, converted by the Lexer implementation from whatever
// offset it natively produces) and the scope stack active at that
// position.
type Token struct {
	Position   Position
	ScopeStack []string
}

// TokenStream is the fallible result of tokenizing a document. Err reports
// a lexer failure that halted iteration; it is checked once on the stream
// rather than on every Token.
type TokenStream interface {
	Tokens() []Token
	Err() error
}

// Lexer is the external tokenization collaborator a Buffer hands its text
// to. The core ships no built-in implementation of this interface inside
// the buffer package itself — see the syntax package for the default
// adapter — so Buffer.Tokens stays usable with any conforming lexer.
type Lexer interface {
	Tokenize(text string, descriptor SyntaxDescriptor, set SyntaxSet) (TokenStream, error)
}
