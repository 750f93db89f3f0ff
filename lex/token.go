package lex

import "github.com/arescentral/procyon/errcode"

// Kind identifies the closed set of token kinds the lexer can emit.
type Kind uint8

const (
	// Synthetic layout tokens, derived from indentation changes rather
	// than any literal bytes.
	LineIn Kind = iota
	LineEq
	LineOut

	// Fixed single-meaning sequences.
	Star
	ArrayIn
	ArrayOut
	MapIn
	MapOut
	Comma
	StrWrapEmpty // >
	StrPipeEmpty // |
	Bang         // !

	// Keyword literals.
	Null
	True
	False
	Inf
	NegInf
	Nan

	// Lexeme-bearing tokens; the token's byte range is the full lexeme.
	Key      // bare-key:
	QKey     // "quoted key":
	Int      // 123, -4
	Float    // 1.5, -0.0, 1e10
	Data     // $0011, $
	Str      // "quoted string"
	StrWrap  // > wrapped text
	StrPipe  // | piped text
	Comment  // # comment

	Error
)

// Token is a single lexeme: a kind, a half-open byte range into the
// lexer's current line buffer, and (for Error) the error code.
type Token struct {
	Kind  Kind
	Begin int
	End   int
	Line  int
	Col   int
	Err   errcode.Code
}

// Bytes returns the token's lexeme from the line it was scanned from.
// The slice is only valid until the lexer reads its next line.
func (t Token) Bytes(line []byte) []byte {
	return line[t.Begin:t.End]
}
