package lex

import (
	"strings"
	"testing"

	"github.com/arescentral/procyon/errcode"
)

type tokSpec struct {
	kind Kind
	text string // expected lexeme, "" for layout/fixed tokens
}

// scanAll returns exactly n tokens (or fewer, if an Error token is seen
// first). Tests pass the exact count they expect; the lexer's EOF
// sentinel repeats forever, so there is no token-level way to detect "the
// last real token" without knowing how many to ask for.
func scanAll(t *testing.T, src string, n int) []Token {
	t.Helper()
	lx := New(strings.NewReader(src))
	var toks []Token
	for i := 0; i < n; i++ {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == Error {
			break
		}
	}
	return toks
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func eqKinds(t *testing.T, got []Kind, want []Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("kind[%d]: got %v, want %v (full got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

func TestLexerIndentPushPop(t *testing.T) {
	want := []Kind{
		LineIn, Key, Int, // a: 1
		LineEq, Key, // b:
		LineIn, Key, Int, // c: 2
		LineOut, LineEq, Key, Int, // d: 3
		LineOut,
	}
	toks := scanAll(t, "a: 1\nb:\n  c: 2\nd: 3\n", len(want))
	eqKinds(t, kinds(toks), want)
}

func TestLexerStarExtension(t *testing.T) {
	want := []Kind{
		LineIn, Star, LineIn, Int, // * 1
		LineOut, LineEq, Star, LineIn, Int, // * 2
		LineOut, LineOut,
	}
	toks := scanAll(t, "* 1\n* 2\n", len(want))
	eqKinds(t, kinds(toks), want)
}

func TestLexerBlankAndCommentLinesAreInvisible(t *testing.T) {
	want := []Kind{
		LineIn, Key, Int,
		LineEq, Key, Int,
		LineOut,
	}
	toks := scanAll(t, "a: 1\n\n# a comment\nb: 2\n", len(want))
	eqKinds(t, kinds(toks), want)
}

func TestLexerEOFSentinelIsIdempotent(t *testing.T) {
	lx := New(strings.NewReader("1\n"))
	_ = lx.Next() // LineIn
	_ = lx.Next() // Int
	first := lx.Next()
	second := lx.Next()
	third := lx.Next()
	if first.Kind != LineOut || second.Kind != LineOut || third.Kind != LineOut {
		t.Fatalf("want repeated LineOut at EOF, got %v %v %v", first.Kind, second.Kind, third.Kind)
	}
}

func TestLexerKeywords(t *testing.T) {
	cases := map[string]Kind{
		"null\n":  Null,
		"true\n":  True,
		"false\n": False,
		"inf\n":   Inf,
		"+inf\n":  Inf,
		"-inf\n":  NegInf,
		"nan\n":   Nan,
	}
	for src, want := range cases {
		lx := New(strings.NewReader(src))
		lx.Next() // LineIn
		tok := lx.Next()
		if tok.Kind != want {
			t.Errorf("%q: got %v, want %v", src, tok.Kind, want)
		}
	}
}

func TestLexerBareKeyVsQuotedKeyVsWord(t *testing.T) {
	lx := New(strings.NewReader("foo: 1\n"))
	lx.Next() // LineIn
	tok := lx.Next()
	if tok.Kind != Key || string(tok.Bytes(lx.Line())) != "foo:" {
		t.Fatalf("bare key: got %v %q", tok.Kind, tok.Bytes(lx.Line()))
	}

	lx2 := New(strings.NewReader(`"foo bar": 1` + "\n"))
	lx2.Next()
	tok2 := lx2.Next()
	if tok2.Kind != QKey {
		t.Fatalf("quoted key: got %v", tok2.Kind)
	}

	lx3 := New(strings.NewReader("123\n"))
	lx3.Next()
	tok3 := lx3.Next()
	if tok3.Kind != Int {
		t.Fatalf("int: got %v", tok3.Kind)
	}

	lx4 := New(strings.NewReader("bogus\n"))
	lx4.Next()
	tok4 := lx4.Next()
	if tok4.Kind != Error || tok4.Err != errcode.BadWord {
		t.Fatalf("bad word: got %v %v", tok4.Kind, tok4.Err)
	}
}

func TestLexerDataParity(t *testing.T) {
	lx := New(strings.NewReader("$0011\n"))
	lx.Next()
	tok := lx.Next()
	if tok.Kind != Data {
		t.Fatalf("want Data, got %v", tok.Kind)
	}

	lx2 := New(strings.NewReader("$001\n"))
	lx2.Next()
	tok2 := lx2.Next()
	if tok2.Kind != Error || tok2.Err != errcode.Partial {
		t.Fatalf("want Partial error, got %v %v", tok2.Kind, tok2.Err)
	}
}

func TestLexerQuotedStringEscapeShape(t *testing.T) {
	lx := New(strings.NewReader(`"a\nb"` + "\n"))
	lx.Next()
	tok := lx.Next()
	if tok.Kind != Str {
		t.Fatalf("want Str, got %v", tok.Kind)
	}

	lx2 := New(strings.NewReader(`"a\u00"` + "\n"))
	lx2.Next()
	tok2 := lx2.Next()
	if tok2.Kind != Error || tok2.Err != errcode.BadUEsc {
		t.Fatalf("want BadUEsc, got %v %v", tok2.Kind, tok2.Err)
	}

	lx3 := New(strings.NewReader(`"unterminated` + "\n"))
	lx3.Next()
	tok3 := lx3.Next()
	if tok3.Kind != Error || tok3.Err != errcode.StrEOL {
		t.Fatalf("want StrEOL, got %v %v", tok3.Kind, tok3.Err)
	}
}

func TestLexerOutdentMismatch(t *testing.T) {
	lx := New(strings.NewReader("a:\n  b: 1\n b: 2\n"))
	var last Token
	for i := 0; i < 100; i++ {
		last = lx.Next()
		if last.Kind == Error {
			break
		}
	}
	if last.Kind != Error || last.Err != errcode.Outdent {
		t.Fatalf("want Outdent error, got %v %v", last.Kind, last.Err)
	}
}
