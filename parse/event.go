// Package parse implements the pushdown parser: it drives a lex.Lexer and
// yields a flat stream of Event values describing one Procyon document,
// handling both the short (bracketed) and long (indented) surface forms,
// multi-segment string/data accumulation, and the bounded-recursion
// safety limit.
package parse

import "github.com/arescentral/procyon/errcode"

// EventKind identifies the closed set of events the parser can yield.
type EventKind uint8

const (
	Null EventKind = iota
	Bool
	Int
	Float
	Data
	String
	ArrayIn
	ArrayOut
	MapIn
	MapOut
	Error
)

// Event is one step of the parser's output stream. Leaf events (Null
// through String) carry a decoded payload in the field matching their
// kind; container events (ArrayIn/MapIn/ArrayOut/MapOut) carry only the
// Long flag. Key/HasKey are set iff this event was emitted directly
// inside a map. After an Error event, the parser yields no further
// events.
type Event struct {
	Kind EventKind

	Key    string
	HasKey bool

	Long bool // false = short (bracketed) form, true = long (indented) form

	B bool
	I int64
	F float64
	D []byte
	S string

	FloatOverflow bool // set alongside Float when the value was soft-clamped

	Err  errcode.Code
	Line int
	Col  int
}
