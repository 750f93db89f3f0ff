package value

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arescentral/procyon/lex"
	"github.com/arescentral/procyon/parse"
)

func read(t *testing.T, src string) Value {
	t.Helper()
	p := parse.New(lex.New(strings.NewReader(src)))
	v, err := Read(p)
	if err != nil {
		t.Fatalf("Read(%q): %v", src, err)
	}
	return v
}

func TestReadScalars(t *testing.T) {
	if got := read(t, "null\n"); got.Kind != KindNull {
		t.Errorf("null: got %+v", got)
	}
	if got := read(t, "true\n"); got.Kind != KindBool || !got.Bool {
		t.Errorf("true: got %+v", got)
	}
	if got := read(t, "42\n"); got.Kind != KindInt || got.Int != 42 {
		t.Errorf("42: got %+v", got)
	}
}

func TestReadNestedStructure(t *testing.T) {
	got := read(t, "top:\n  inner: 42\n  list:\n    * 1\n    * 2\n")
	want := Value{Kind: KindMap, Map: []Pair{
		{Key: "top", Value: Value{Kind: KindMap, Map: []Pair{
			{Key: "inner", Value: Value{Kind: KindInt, Int: 42}},
			{Key: "list", Value: Value{Kind: KindArray, Array: []Value{
				{Kind: KindInt, Int: 1},
				{Kind: KindInt, Int: 2},
			}}},
		}}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadErrorPropagates(t *testing.T) {
	_, err := Read(parse.New(lex.New(strings.NewReader("99999999999999999999\n"))))
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("want *value.Error, got %T: %v", err, err)
	}
}
