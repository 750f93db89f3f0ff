// Package lex implements the indentation-aware tokenizer: it consumes a
// LineReader and emits a flat stream of Token values, including the
// synthetic LineIn/LineEq/LineOut layout tokens derived from leading
// whitespace. It never looks across lines for anything but those layout
// decisions.
package lex

import (
	"io"

	"github.com/arescentral/procyon/errcode"
)

// Lexer scans Procyon source into tokens. A zero Lexer is not usable;
// construct one with New.
type Lexer struct {
	lr  *LineReader
	line []byte
	pos int

	indent     int
	eq         bool
	levels     []int
	lastKind   Kind
	contentPos int

	ready  bool
	atEOF  bool
	sysErr error
}

// noLastKind is a sentinel distinct from every real Kind value used to
// seed lastKind, so the first reconcile call never mistakes "no history"
// for "we just emitted LineOut".
const noLastKind Kind = 0xFF

// New returns a Lexer reading from r.
func New(r io.Reader) *Lexer {
	return &Lexer{
		lr:       NewLineReader(r),
		levels:   []int{-1},
		lastKind: noLastKind,
	}
}

// Line returns the current line buffer, for resolving a Token's byte
// range. It is only valid until the next call to Next.
func (lx *Lexer) Line() []byte { return lx.line }

// Lineno returns the 1-based line number of the most recently scanned
// token.
func (lx *Lexer) Lineno() int { return lx.lr.Lineno() }

// Next returns the next token. After an Error token the lexer does not
// resynchronize: later calls may repeat the error or go on scanning from
// wherever it stopped, so callers must stop requesting tokens once they
// observe one.
func (lx *Lexer) Next() Token {
	for {
		if lx.line == nil {
			if tok, stop := lx.beginLine(); stop {
				return tok
			}
			continue
		}
		if !lx.ready {
			if tok, ok := lx.reconcile(); ok {
				// reconcile settles the indent stack one level at a
				// time; stay unready so the next Next call reconciles
				// again instead of scanning content prematurely.
				return tok
			}
			lx.ready = true
		}

		for lx.pos < len(lx.line) && isSpaceOrTab(lx.line[lx.pos]) {
			lx.pos++
		}
		if lx.line[lx.pos] == '\n' {
			lx.line = nil
			continue
		}

		tok := lx.scanToken()
		if tok.Kind == Comment {
			continue
		}
		return tok
	}
}

// beginLine advances to the next physical line, or (at EOF) forces the
// indent stack closed one level per call. It returns (token, true) when
// a token is ready to hand back, or (zero, false) to let Next loop
// (blank and comment-only lines never produce layout events).
func (lx *Lexer) beginLine() (Token, bool) {
	if lx.sysErr != nil {
		return lx.failAt(0, errcode.System), true
	}

	if lx.atEOF {
		lx.indent = 0
		lx.eq = false
		if tok, ok := lx.reconcile(); ok {
			return tok, true
		}
		lx.lastKind = LineOut
		return Token{Kind: LineOut, Line: lx.lr.Lineno(), Col: 1}, true
	}

	line, err := lx.lr.NextLine()
	if err == io.EOF {
		lx.atEOF = true
		lx.indent = 0
		lx.eq = false
		if tok, ok := lx.reconcile(); ok {
			return tok, true
		}
		lx.lastKind = LineOut
		return Token{Kind: LineOut, Line: lx.lr.Lineno(), Col: 1}, true
	}
	if err != nil {
		lx.atEOF = true
		lx.sysErr = err
		return lx.failAt(0, errcode.System), true
	}

	lx.line = line
	lx.pos = 0

	indent, contentPos, ok := lx.peekIndent(0, 0)
	if !ok {
		lx.line = nil
		return Token{}, false
	}
	if line[contentPos] == '#' {
		lx.line = nil
		return Token{}, false
	}

	lx.indent = indent
	lx.contentPos = contentPos
	lx.eq = true
	lx.ready = false
	return Token{}, false
}

// peekIndent scans line[from:] without mutating the cursor, returning
// the indentation column reached (starting from base) and the offset of
// the first non-whitespace byte. It reports ok=false if the rest of the
// line is blank. Tabs round up to the next even column at least 2
// greater than the current one.
func (lx *Lexer) peekIndent(from, base int) (indent, pos int, ok bool) {
	indent = base
	for p := from; p < len(lx.line); p++ {
		switch lx.line[p] {
		case ' ':
			indent++
		case '\t':
			indent = (indent ^ (indent & 1)) + 2
		case '\n':
			return 0, 0, false
		default:
			return indent, p, true
		}
	}
	return 0, 0, false
}

// reconcile compares lx.indent against the top of the indent stack and
// returns at most one layout token representing the difference. Called
// repeatedly (once per Next call) until the stack matches, it pops or
// pushes one level at a time, exactly as the source's indent machinery
// does.
func (lx *Lexer) reconcile() (Token, bool) {
	top := lx.levels[len(lx.levels)-1]
	ln := lx.lr.Lineno()

	switch {
	case lx.indent > top:
		lx.eq = false
		if lx.lastKind == LineOut {
			lx.indent = top
			lx.lastKind = Error
			return lx.failAt(lx.contentPos, errcode.Outdent), true
		}
		lx.levels = append(lx.levels, lx.indent)
		lx.lastKind = LineIn
		return Token{Kind: LineIn, Line: ln, Col: lx.contentPos + 1}, true

	case lx.indent < top:
		lx.levels = lx.levels[:len(lx.levels)-1]
		lx.lastKind = LineOut
		return Token{Kind: LineOut, Line: ln, Col: lx.contentPos + 1}, true

	case lx.eq:
		lx.eq = false
		lx.lastKind = LineEq
		return Token{Kind: LineEq, Line: ln, Col: lx.contentPos + 1}, true
	}
	return Token{}, false
}

func (lx *Lexer) failAt(pos int, code errcode.Code) Token {
	return Token{Kind: Error, Err: code, Line: lx.lr.Lineno(), Col: pos + 1}
}

func (lx *Lexer) single(kind Kind) Token {
	begin := lx.pos
	lx.pos++
	return Token{Kind: kind, Begin: begin, End: lx.pos, Line: lx.lr.Lineno(), Col: begin + 1}
}

func (lx *Lexer) scanToken() Token {
	b := lx.line[lx.pos]
	switch b {
	case '[':
		return lx.single(ArrayIn)
	case ']':
		return lx.single(ArrayOut)
	case '{':
		return lx.single(MapIn)
	case '}':
		return lx.single(MapOut)
	case ',':
		return lx.single(Comma)
	case '!':
		return lx.single(Bang)
	case '*':
		return lx.scanStar()
	case '>':
		return lx.scanStringLine(StrWrapEmpty, StrWrap)
	case '|':
		return lx.scanStringLine(StrPipeEmpty, StrPipe)
	case '#':
		return lx.scanComment()
	case '$':
		return lx.scanData()
	case '"':
		return lx.scanQuoted()
	default:
		if isKeyChar(b) {
			return lx.scanWord()
		}
		if isControl(b) {
			return lx.failAt(lx.pos, errcode.Ctrl)
		}
		if b >= 0x80 {
			return lx.failAt(lx.pos, errcode.NonASCII)
		}
		return lx.failAt(lx.pos, errcode.BadChar)
	}
}

// scanStar consumes the '*' and, as a side effect, extends the column
// the lexer treats as "current indent" to just past the star and any
// immediately following spaces — this is what lets `* value` and
// `* * value` introduce nested blocks without an explicit indented line.
func (lx *Lexer) scanStar() Token {
	begin := lx.pos
	lx.pos++
	if indent, contentPos, ok := lx.peekIndent(lx.pos, lx.indent+1); ok {
		lx.indent = indent
		lx.contentPos = contentPos
		lx.eq = true
		lx.ready = false
	}
	return Token{Kind: Star, Begin: begin, End: begin + 1, Line: lx.lr.Lineno(), Col: begin + 1}
}

func (lx *Lexer) scanStringLine(emptyKind, fullKind Kind) Token {
	begin := lx.pos
	ln := lx.lr.Lineno()
	lx.pos++
	for lx.pos < len(lx.line) && lx.line[lx.pos] != '\n' {
		if isControl(lx.line[lx.pos]) {
			return lx.failAt(lx.pos, errcode.Ctrl)
		}
		lx.pos++
	}
	end := lx.pos
	kind := fullKind
	if end == begin+1 {
		kind = emptyKind
	}
	return Token{Kind: kind, Begin: begin, End: end, Line: ln, Col: begin + 1}
}

func (lx *Lexer) scanComment() Token {
	begin := lx.pos
	ln := lx.lr.Lineno()
	for lx.pos < len(lx.line) && lx.line[lx.pos] != '\n' {
		lx.pos++
	}
	return Token{Kind: Comment, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
}

func (lx *Lexer) scanData() Token {
	begin := lx.pos
	ln := lx.lr.Lineno()
	lx.pos++
	parity := 0
	for lx.pos < len(lx.line) && lx.line[lx.pos] != '\n' {
		b := lx.line[lx.pos]
		switch {
		case isSpaceOrTab(b):
			lx.pos++
		case isHex(b):
			parity++
			lx.pos++
		default:
			return lx.failAt(lx.pos, errcode.DataChar)
		}
	}
	if parity%2 != 0 {
		return Token{Kind: Error, Err: errcode.Partial, Line: ln, Col: lx.pos}
	}
	return Token{Kind: Data, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
}

func (lx *Lexer) consumeHex(n int) bool {
	if lx.pos+n > len(lx.line) {
		return false
	}
	for i := 0; i < n; i++ {
		if !isHex(lx.line[lx.pos+i]) {
			return false
		}
	}
	lx.pos += n
	return true
}

func (lx *Lexer) scanQuoted() Token {
	begin := lx.pos
	ln := lx.lr.Lineno()
	lx.pos++

	for {
		if lx.pos >= len(lx.line) || lx.line[lx.pos] == '\n' || isControl(lx.line[lx.pos]) {
			return Token{Kind: Error, Err: errcode.StrEOL, Line: ln, Col: lx.pos + 1}
		}
		b := lx.line[lx.pos]
		if b == '"' {
			lx.pos++
			break
		}
		if b != '\\' {
			lx.pos++
			continue
		}

		escPos := lx.pos
		lx.pos++
		if lx.pos >= len(lx.line) {
			return lx.failAt(escPos, errcode.BadEsc)
		}
		switch lx.line[lx.pos] {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			lx.pos++
		case 'u':
			lx.pos++
			if !lx.consumeHex(4) {
				return lx.failAt(escPos, errcode.BadUEsc)
			}
		case 'U':
			lx.pos++
			if !lx.consumeHex(8) {
				return lx.failAt(escPos, errcode.BadUEsc)
			}
		default:
			return lx.failAt(escPos, errcode.BadEsc)
		}
	}

	if lx.pos < len(lx.line) && lx.line[lx.pos] == ':' {
		lx.pos++
		return Token{Kind: QKey, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	}
	return Token{Kind: Str, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
}

func (lx *Lexer) scanWord() Token {
	begin := lx.pos
	ln := lx.lr.Lineno()
	for lx.pos < len(lx.line) && isKeyChar(lx.line[lx.pos]) {
		lx.pos++
	}
	if lx.pos < len(lx.line) && lx.line[lx.pos] == ':' {
		lx.pos++
		return Token{Kind: Key, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	}

	word := lx.line[begin:lx.pos]
	switch string(word) {
	case "null":
		return Token{Kind: Null, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	case "true":
		return Token{Kind: True, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	case "false":
		return Token{Kind: False, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	case "inf", "+inf":
		return Token{Kind: Inf, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	case "-inf":
		return Token{Kind: NegInf, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	case "nan":
		return Token{Kind: Nan, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	}

	if kind, ok := classifyNumber(word); ok {
		return Token{Kind: kind, Begin: begin, End: lx.pos, Line: ln, Col: begin + 1}
	}
	return Token{Kind: Error, Err: errcode.BadWord, Line: ln, Col: begin + 1}
}

// classifyNumber decides whether word has the lexical shape of an
// integer or a float literal. It is deliberately lenient about leading
// zeros and magnitude: when the parser converts the lexeme, the numeric
// package checks the range of both kinds and rejects leading zeros in a
// float's integer part; an integer lexeme with leading zeros is accepted.
func classifyNumber(word []byte) (Kind, bool) {
	i, n := 0, len(word)
	if n == 0 {
		return 0, false
	}
	if word[0] == '+' || word[0] == '-' {
		i++
	}
	start := i
	for i < n && isDigit(word[i]) {
		i++
	}
	if i == start {
		return 0, false
	}

	isFloat := false
	if i < n && word[i] == '.' {
		isFloat = true
		i++
		fracStart := i
		for i < n && isDigit(word[i]) {
			i++
		}
		if i == fracStart {
			return 0, false
		}
	}
	if i < n && (word[i] == 'e' || word[i] == 'E') {
		isFloat = true
		i++
		if i < n && (word[i] == '+' || word[i] == '-') {
			i++
		}
		expStart := i
		for i < n && isDigit(word[i]) {
			i++
		}
		if i == expStart {
			return 0, false
		}
	}
	if i != n {
		return 0, false
	}
	if isFloat {
		return Float, true
	}
	return Int, true
}
