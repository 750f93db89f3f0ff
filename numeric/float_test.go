package numeric_test

import (
	"math"
	"testing"

	"github.com/arescentral/procyon/numeric"
)

func TestParseFloatSyntax(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
		want numeric.Status
	}{
		{"integer", "0", numeric.StatusOK},
		{"simple", "1.5", numeric.StatusOK},
		{"negative", "-1.5", numeric.StatusOK},
		{"exponent", "1.5e10", numeric.StatusOK},
		{"exponent plus", "1.5e+10", numeric.StatusOK},
		{"exponent minus", "1.5e-10", numeric.StatusOK},
		{"capital e", "1.5E10", numeric.StatusOK},
		{"leading zero fraction", "0.5", numeric.StatusOK},
		{"empty", "", numeric.StatusSyntax},
		{"bare sign", "-", numeric.StatusSyntax},
		{"leading zeros", "01.5", numeric.StatusSyntax},
		{"no digit before dot", ".5", numeric.StatusSyntax},
		{"no digit after dot", "1.", numeric.StatusSyntax},
		{"dot only", ".", numeric.StatusSyntax},
		{"empty exponent", "1e", numeric.StatusSyntax},
		{"empty exponent sign", "1e+", numeric.StatusSyntax},
		{"trailing garbage", "1.5x", numeric.StatusSyntax},
		{"hex not accepted", "0x1p3", numeric.StatusSyntax},
		{"inf word not accepted", "inf", numeric.StatusSyntax},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, got := numeric.ParseFloat([]byte(test.in))
			if got != test.want {
				t.Errorf("ParseFloat(%q) status = %v, want %v", test.in, got, test.want)
			}
		})
	}
}

func TestParseFloatValues(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
		want float64
	}{
		{"zero", "0", 0},
		{"one half", "0.5", 0.5},
		{"negative", "-1.5", -1.5},
		{"large", "1e10", 1e10},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, status := numeric.ParseFloat([]byte(test.in))
			if status != numeric.StatusOK || got != test.want {
				t.Errorf("ParseFloat(%q) = (%v, %v), want (%v, OK)", test.in, got, status, test.want)
			}
		})
	}
}

func TestParseFloatRange(t *testing.T) {
	for _, test := range []struct {
		name    string
		in      string
		wantInf int // +1, -1, or 0
		wantZero bool
	}{
		{"overflow", "1e400", 1, false},
		{"negative overflow", "-1e400", -1, false},
		{"underflow", "1e-400", 0, true},
		{"smallest subnormal", "5e-324", 0, false},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, status := numeric.ParseFloat([]byte(test.in))
			if status != numeric.StatusRange {
				t.Fatalf("ParseFloat(%q) status = %v, want StatusRange", test.in, status)
			}
			if test.wantInf != 0 && !math.IsInf(got, test.wantInf) {
				t.Errorf("ParseFloat(%q) = %v, want Inf(%d)", test.in, got, test.wantInf)
			}
			if test.wantZero && got != 0 {
				t.Errorf("ParseFloat(%q) = %v, want 0", test.in, got)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{-1, "-1.0"},
		{1.5, "1.5"},
		{100, "100.0"},
		{120, "120.0"},
		{0.001, "0.001"},
		{0.5, "0.5"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	} {
		t.Run(test.want, func(t *testing.T) {
			if got := string(numeric.FormatFloat(test.in)); got != test.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", test.in, got, test.want)
			}
		})
	}
}

func TestFormatFloatScientificBounds(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want string
	}{
		{1e16, "1e+16"},
		{1e-5, "1e-05"},
	} {
		if got := string(numeric.FormatFloat(test.in)); got != test.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestParseFloatFormatFloatRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 1.5, 0.1, 123456.789, 1e100, 1e-100} {
		s := numeric.FormatFloat(v)
		got, status := numeric.ParseFloat(s)
		if status != numeric.StatusOK && status != numeric.StatusRange {
			t.Fatalf("ParseFloat(%q) status = %v", s, status)
		}
		if got != v {
			t.Errorf("round trip of %v through %q = %v", v, s, got)
		}
	}
}
