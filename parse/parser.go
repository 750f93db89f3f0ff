package parse

import (
	"math"

	"github.com/arescentral/procyon/errcode"
	"github.com/arescentral/procyon/lex"
	"github.com/arescentral/procyon/numeric"
)

// maxDepth bounds how deeply values may nest, whether through indentation
// (long form) or brackets (short form). It exists to turn runaway or
// adversarial input into a reported error instead of a stack overflow.
const maxDepth = 64

// Parser turns a token stream from lex.Lexer into a flat stream of Events
// describing one Procyon document.
//
// Parser walks the grammar with ordinary recursive-descent Go methods,
// bounded by maxDepth, and buffers the events a single descent produces
// into a queue that Next drains one at a time (see DESIGN.md for why).
// Since the lexer is only ever driven forward and no event is ever
// produced out of order, this is observably identical to a truly
// incremental pushdown machine.
type Parser struct {
	lx      *lex.Lexer
	queue   []Event
	errored bool
	drained bool
}

// New returns a Parser reading tokens from lx.
func New(lx *lex.Lexer) *Parser {
	return &Parser{lx: lx}
}

// Next returns the next event and true, or a zero Event and false once the
// document (or an error) has been fully reported.
func (p *Parser) Next() (Event, bool) {
	if len(p.queue) == 0 && !p.drained {
		p.run()
		p.drained = true
	}
	if len(p.queue) == 0 {
		return Event{}, false
	}
	ev := p.queue[0]
	p.queue = p.queue[1:]
	return ev, true
}

type key struct {
	name string
	has  bool
}

var noKey = key{}

func (p *Parser) emit(ev Event) {
	p.queue = append(p.queue, ev)
}

func (p *Parser) emitErr(tok lex.Token, code errcode.Code) {
	if p.errored {
		return
	}
	p.errored = true
	p.emit(Event{Kind: Error, Err: code, Line: tok.Line, Col: tok.Col})
}

// emitTokenErr reports a lex.Error token's own code, for the many call
// sites that just need to propagate a lexical failure unchanged.
func (p *Parser) emitTokenErr(tok lex.Token) {
	p.emitErr(tok, tok.Err)
}

func (p *Parser) nextToken() lex.Token {
	return p.lx.Next()
}

func (p *Parser) tokBytes(tok lex.Token) []byte {
	return tok.Bytes(p.lx.Line())
}

func withKey(ev Event, k key) Event {
	ev.Key = k.name
	ev.HasKey = k.has
	return ev
}

// run parses exactly one document: a single value wrapped in the lexer's
// outermost LineIn/LineOut pair.
func (p *Parser) run() {
	tok := p.nextToken()
	if tok.Kind == lex.Error {
		p.emitTokenErr(tok)
		return
	}
	if tok.Kind != lex.LineIn {
		p.emitErr(tok, errcode.Long)
		return
	}
	p.scopedValue(noKey, 1)
	if p.errored {
		return
	}
	closeTok := p.nextToken()
	if closeTok.Kind == lex.Error {
		p.emitTokenErr(closeTok)
		return
	}
	if closeTok.Kind != lex.LineOut {
		p.emitErr(closeTok, errcode.Suffix)
	}
}

// valueAfterIntro parses the value belonging to a map key or a long-array
// '*' marker: either it continues inline on the same line (a short value),
// or the marker is followed by its own indented LineIn/LineOut-wrapped
// scope holding a value of either form.
func (p *Parser) valueAfterIntro(k key, depth int) {
	tok := p.nextToken()
	if tok.Kind == lex.Error {
		p.emitTokenErr(tok)
		return
	}
	if tok.Kind == lex.LineIn {
		if depth+1 > maxDepth {
			p.emitErr(tok, errcode.Recursion)
			return
		}
		p.scopedValue(k, depth+1)
		if p.errored {
			return
		}
		// A long array, map, string or data block ends by consuming the
		// LineOut that closes this scope; only a short value leaves it.
		if p.queue[len(p.queue)-1].Long {
			return
		}
		closeTok := p.nextToken()
		if closeTok.Kind == lex.Error {
			p.emitTokenErr(closeTok)
			return
		}
		if closeTok.Kind != lex.LineOut {
			p.emitErr(closeTok, errcode.Suffix)
		}
		return
	}
	p.shortValue(tok, k, depth)
}

// scopedValue decides, from the first real token inside an already-opened
// indent scope, whether this value is a long array, a long map, a
// multi-segment string or data block, or (falling through) a short value
// sitting alone on its own line.
func (p *Parser) scopedValue(k key, depth int) {
	tok := p.nextToken()
	if tok.Kind == lex.Error {
		p.emitTokenErr(tok)
		return
	}
	switch tok.Kind {
	case lex.Star:
		p.longArray(k, tok, depth)
	case lex.Key, lex.QKey:
		p.longMap(k, tok, depth)
	case lex.StrWrapEmpty, lex.StrWrap, lex.StrPipeEmpty, lex.StrPipe, lex.Bang:
		p.longString(k, tok, depth)
	case lex.Data:
		p.longData(k, tok, depth)
	default:
		p.shortValue(tok, k, depth)
	}
}

func (p *Parser) shortValue(tok lex.Token, k key, depth int) {
	switch tok.Kind {
	case lex.Null:
		p.emit(withKey(Event{Kind: Null, Line: tok.Line, Col: tok.Col}, k))
	case lex.True:
		p.emit(withKey(Event{Kind: Bool, B: true, Line: tok.Line, Col: tok.Col}, k))
	case lex.False:
		p.emit(withKey(Event{Kind: Bool, B: false, Line: tok.Line, Col: tok.Col}, k))
	case lex.Inf:
		p.emit(withKey(Event{Kind: Float, F: math.Inf(1), Line: tok.Line, Col: tok.Col}, k))
	case lex.NegInf:
		p.emit(withKey(Event{Kind: Float, F: math.Inf(-1), Line: tok.Line, Col: tok.Col}, k))
	case lex.Nan:
		p.emit(withKey(Event{Kind: Float, F: math.NaN(), Line: tok.Line, Col: tok.Col}, k))

	case lex.Int:
		v, code := numeric.ParseInt(p.tokBytes(tok))
		if code != errcode.OK {
			p.emitErr(tok, code)
			return
		}
		p.emit(withKey(Event{Kind: Int, I: v, Line: tok.Line, Col: tok.Col}, k))

	case lex.Float:
		v, status := numeric.ParseFloat(p.tokBytes(tok))
		switch status {
		case numeric.StatusSyntax:
			p.emitErr(tok, errcode.InvalidFloat)
		case numeric.StatusRange:
			p.emit(withKey(Event{Kind: Float, F: v, FloatOverflow: true, Line: tok.Line, Col: tok.Col}, k))
		default:
			p.emit(withKey(Event{Kind: Float, F: v, Line: tok.Line, Col: tok.Col}, k))
		}

	case lex.Str:
		raw := p.tokBytes(tok)
		s, code := decodeQuoted(raw[1 : len(raw)-1])
		if code != errcode.OK {
			p.emitErr(tok, code)
			return
		}
		p.emit(withKey(Event{Kind: String, S: s, Line: tok.Line, Col: tok.Col}, k))

	case lex.Data:
		d := decodeData(p.tokBytes(tok))
		p.emit(withKey(Event{Kind: Data, D: d, Line: tok.Line, Col: tok.Col}, k))

	case lex.ArrayIn:
		p.shortArray(k, tok, depth+1)
	case lex.MapIn:
		p.shortMap(k, tok, depth+1)

	default:
		p.emitErr(tok, errcode.Short)
	}
}

func (p *Parser) shortArray(k key, open lex.Token, depth int) {
	if depth > maxDepth {
		p.emitErr(open, errcode.Recursion)
		return
	}
	p.emit(withKey(Event{Kind: ArrayIn, Line: open.Line, Col: open.Col}, k))

	tok := p.nextToken()
	if tok.Kind == lex.Error {
		p.emitTokenErr(tok)
		return
	}
	if tok.Kind == lex.ArrayOut {
		p.emit(Event{Kind: ArrayOut, Line: tok.Line, Col: tok.Col})
		return
	}
	for {
		if tok.Kind == lex.LineIn {
			p.emitErr(tok, errcode.Short)
			return
		}
		p.shortValue(tok, noKey, depth)
		if p.errored {
			return
		}
		sep := p.nextToken()
		if sep.Kind == lex.Error {
			p.emitTokenErr(sep)
			return
		}
		if sep.Kind == lex.ArrayOut {
			p.emit(Event{Kind: ArrayOut, Line: sep.Line, Col: sep.Col})
			return
		}
		if sep.Kind != lex.Comma {
			p.emitErr(sep, errcode.ArrayEnd)
			return
		}
		tok = p.nextToken()
		if tok.Kind == lex.Error {
			p.emitTokenErr(tok)
			return
		}
	}
}

func (p *Parser) shortMap(k key, open lex.Token, depth int) {
	if depth > maxDepth {
		p.emitErr(open, errcode.Recursion)
		return
	}
	p.emit(withKey(Event{Kind: MapIn, Line: open.Line, Col: open.Col}, k))

	tok := p.nextToken()
	if tok.Kind == lex.Error {
		p.emitTokenErr(tok)
		return
	}
	if tok.Kind == lex.MapOut {
		p.emit(Event{Kind: MapOut, Line: tok.Line, Col: tok.Col})
		return
	}
	for {
		if tok.Kind != lex.Key && tok.Kind != lex.QKey {
			p.emitErr(tok, errcode.MapKey)
			return
		}
		name, code := decodeKeyToken(tok, p.tokBytes(tok))
		if code != errcode.OK {
			p.emitErr(tok, code)
			return
		}
		valTok := p.nextToken()
		if valTok.Kind == lex.Error {
			p.emitTokenErr(valTok)
			return
		}
		if valTok.Kind == lex.LineIn {
			p.emitErr(valTok, errcode.Short)
			return
		}
		p.shortValue(valTok, key{name, true}, depth)
		if p.errored {
			return
		}
		sep := p.nextToken()
		if sep.Kind == lex.Error {
			p.emitTokenErr(sep)
			return
		}
		if sep.Kind == lex.MapOut {
			p.emit(Event{Kind: MapOut, Line: sep.Line, Col: sep.Col})
			return
		}
		if sep.Kind != lex.Comma {
			p.emitErr(sep, errcode.MapEnd)
			return
		}
		tok = p.nextToken()
		if tok.Kind == lex.Error {
			p.emitTokenErr(tok)
			return
		}
	}
}

// longArray parses a '*'-introduced block array: open has already been
// consumed as the first element's marker.
func (p *Parser) longArray(k key, open lex.Token, depth int) {
	if depth > maxDepth {
		p.emitErr(open, errcode.Recursion)
		return
	}
	p.emit(withKey(Event{Kind: ArrayIn, Long: true, Line: open.Line, Col: open.Col}, k))

	for {
		p.valueAfterIntro(noKey, depth)
		if p.errored {
			return
		}
		sep := p.nextToken()
		if sep.Kind == lex.Error {
			p.emitTokenErr(sep)
			return
		}
		if sep.Kind == lex.LineOut {
			p.emit(Event{Kind: ArrayOut, Long: true, Line: sep.Line, Col: sep.Col})
			return
		}
		if sep.Kind != lex.LineEq {
			p.emitErr(sep, errcode.Sibling)
			return
		}
		next := p.nextToken()
		if next.Kind == lex.Error {
			p.emitTokenErr(next)
			return
		}
		if next.Kind != lex.Star {
			p.emitErr(next, errcode.Sibling)
			return
		}
	}
}

// longMap parses a key-introduced block map: open has already been
// consumed as the first entry's key.
func (p *Parser) longMap(k key, open lex.Token, depth int) {
	if depth > maxDepth {
		p.emitErr(open, errcode.Recursion)
		return
	}
	p.emit(withKey(Event{Kind: MapIn, Long: true, Line: open.Line, Col: open.Col}, k))

	tok := open
	for {
		name, code := decodeKeyToken(tok, p.tokBytes(tok))
		if code != errcode.OK {
			p.emitErr(tok, code)
			return
		}
		p.valueAfterIntro(key{name, true}, depth)
		if p.errored {
			return
		}
		sep := p.nextToken()
		if sep.Kind == lex.Error {
			p.emitTokenErr(sep)
			return
		}
		if sep.Kind == lex.LineOut {
			p.emit(Event{Kind: MapOut, Long: true, Line: sep.Line, Col: sep.Col})
			return
		}
		if sep.Kind != lex.LineEq {
			p.emitErr(sep, errcode.Sibling)
			return
		}
		tok = p.nextToken()
		if tok.Kind == lex.Error {
			p.emitTokenErr(tok)
			return
		}
		if tok.Kind != lex.Key && tok.Kind != lex.QKey {
			p.emitErr(tok, errcode.MapKey)
			return
		}
	}
}

// longString accumulates a run of '>'/'|' segments, optionally finalized
// by a trailing '!', into a single STRING event.
func (p *Parser) longString(k key, first lex.Token, depth int) {
	if depth > maxDepth {
		p.emitErr(first, errcode.Recursion)
		return
	}
	var acc []byte
	cur := first
	for {
		if cur.Kind == lex.Bang {
			next := p.nextToken()
			if next.Kind == lex.Error {
				p.emitTokenErr(next)
				return
			}
			if next.Line == cur.Line && next.Kind != lex.LineOut {
				p.emitErr(next, errcode.BangSuffix)
				return
			}
			if next.Kind != lex.LineOut {
				p.emitErr(next, errcode.BangLast)
				return
			}
			p.emit(withKey(Event{Kind: String, S: string(acc), Long: true, Line: first.Line, Col: first.Col}, k))
			return
		}

		appendSegment(&acc, cur, p.lx.Line())

		next := p.nextToken()
		if next.Kind == lex.Error {
			p.emitTokenErr(next)
			return
		}
		if next.Kind == lex.LineOut {
			acc = append(acc, '\n')
			p.emit(withKey(Event{Kind: String, S: string(acc), Long: true, Line: first.Line, Col: first.Col}, k))
			return
		}
		if next.Kind != lex.LineEq {
			p.emitErr(next, errcode.Sibling)
			return
		}
		cur = p.nextToken()
		if cur.Kind == lex.Error {
			p.emitTokenErr(cur)
			return
		}
		switch cur.Kind {
		case lex.StrWrapEmpty, lex.StrWrap, lex.StrPipeEmpty, lex.StrPipe, lex.Bang:
		default:
			p.emitErr(cur, errcode.Sibling)
			return
		}
	}
}

func appendSegment(acc *[]byte, tok lex.Token, line []byte) {
	content := segmentContent(tok, line)
	switch tok.Kind {
	case lex.StrWrapEmpty, lex.StrWrap:
		if len(*acc) > 0 {
			*acc = append(*acc, ' ')
		}
	case lex.StrPipeEmpty, lex.StrPipe:
		if len(*acc) > 0 {
			*acc = append(*acc, '\n')
		}
	}
	*acc = append(*acc, content...)
}

func segmentContent(tok lex.Token, line []byte) []byte {
	raw := tok.Bytes(line)
	if len(raw) <= 1 {
		return nil
	}
	content := raw[1:]
	if len(content) > 0 && content[0] == ' ' {
		content = content[1:]
	}
	return content
}

// longData accumulates a run of '$' segments into a single DATA event.
func (p *Parser) longData(k key, first lex.Token, depth int) {
	if depth > maxDepth {
		p.emitErr(first, errcode.Recursion)
		return
	}
	acc := decodeData(p.tokBytes(first))
	cur := first
	for {
		next := p.nextToken()
		if next.Kind == lex.Error {
			p.emitTokenErr(next)
			return
		}
		if next.Kind == lex.LineOut {
			p.emit(withKey(Event{Kind: Data, D: acc, Long: true, Line: first.Line, Col: first.Col}, k))
			return
		}
		if next.Kind != lex.LineEq {
			p.emitErr(next, errcode.Sibling)
			return
		}
		cur = p.nextToken()
		if cur.Kind == lex.Error {
			p.emitTokenErr(cur)
			return
		}
		if cur.Kind != lex.Data {
			p.emitErr(cur, errcode.Sibling)
			return
		}
		acc = append(acc, decodeData(p.tokBytes(cur))...)
	}
}

// decodeKeyToken turns a Key or QKey token's lexeme (including its
// trailing ':') into its string value: bare keys are used verbatim, with
// no escape processing; quoted keys go through the same escape decoder as
// short strings.
func decodeKeyToken(tok lex.Token, raw []byte) (string, errcode.Code) {
	if tok.Kind == lex.Key {
		return string(raw[:len(raw)-1]), errcode.OK
	}
	return decodeQuoted(raw[1 : len(raw)-2])
}
