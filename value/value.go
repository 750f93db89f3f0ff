// Package value builds an in-memory value tree from a parse.Parser's event
// stream: the thin layer most callers actually want instead of driving the
// parser's events by hand.
package value

import (
	"fmt"

	"github.com/arescentral/procyon/errcode"
	"github.com/arescentral/procyon/parse"
)

// Kind identifies which of the eight value variants a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindData
	KindString
	KindArray
	KindMap
)

// Pair is one entry of a Map value, keeping insertion order.
type Pair struct {
	Key   string
	Value Value
}

// Value is one decoded Procyon value. Only the field matching Kind is
// meaningful.
type Value struct {
	Kind Kind

	Bool  bool
	Int   int64
	Float float64
	Data  []byte
	Str   string
	Array []Value
	Map   []Pair
}

// Error reports a parse failure, with the same location/code information
// the originating parse.Event carried.
type Error struct {
	Code errcode.Code
	Line int
	Col  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Code)
}

// Read drives p to completion and materializes its event stream into a
// single Value, or returns the first Error event p produced.
func Read(p *parse.Parser) (Value, error) {
	b := builder{p: p}
	v, err := b.next()
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

type builder struct {
	p *parse.Parser
}

func (b *builder) next() (Value, error) {
	ev, ok := b.p.Next()
	if !ok {
		return Value{}, fmt.Errorf("value: unexpected end of event stream")
	}
	return b.fromEvent(ev)
}

func (b *builder) fromEvent(ev parse.Event) (Value, error) {
	switch ev.Kind {
	case parse.Error:
		return Value{}, &Error{Code: ev.Err, Line: ev.Line, Col: ev.Col}
	case parse.Null:
		return Value{Kind: KindNull}, nil
	case parse.Bool:
		return Value{Kind: KindBool, Bool: ev.B}, nil
	case parse.Int:
		return Value{Kind: KindInt, Int: ev.I}, nil
	case parse.Float:
		return Value{Kind: KindFloat, Float: ev.F}, nil
	case parse.Data:
		return Value{Kind: KindData, Data: ev.D}, nil
	case parse.String:
		return Value{Kind: KindString, Str: ev.S}, nil
	case parse.ArrayIn:
		return b.array()
	case parse.MapIn:
		return b.mapValue()
	default:
		return Value{}, fmt.Errorf("value: unexpected event kind %v", ev.Kind)
	}
}

func (b *builder) array() (Value, error) {
	var elems []Value
	for {
		ev, ok := b.p.Next()
		if !ok {
			return Value{}, fmt.Errorf("value: unexpected end of event stream in array")
		}
		if ev.Kind == parse.ArrayOut {
			return Value{Kind: KindArray, Array: elems}, nil
		}
		v, err := b.fromEvent(ev)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
}

func (b *builder) mapValue() (Value, error) {
	var pairs []Pair
	for {
		ev, ok := b.p.Next()
		if !ok {
			return Value{}, fmt.Errorf("value: unexpected end of event stream in map")
		}
		if ev.Kind == parse.MapOut {
			return Value{Kind: KindMap, Map: pairs}, nil
		}
		v, err := b.fromEvent(ev)
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: ev.Key, Value: v})
	}
}
