// Package numeric implements the integer and decimal-float codecs the
// parser uses to turn INT and FLOAT token lexemes into Go values, keeping
// overflow/underflow distinct from plain syntax errors.
package numeric

import (
	"math"

	"github.com/arescentral/procyon/errcode"
)

// maxDigits64 is the number of decimal digits in math.MaxInt64
// (9223372036854775807): any more digits than this is unconditionally an
// overflow, and exactly this many digits needs the split-and-compare
// boundary check below.
const maxDigits64 = 19

// ParseInt parses data as a signed base-10 integer, accepting an optional
// leading '+' or '-'. It reports errcode.InvalidInt for empty input or any
// embedded non-digit, and errcode.IntOverflow when the magnitude exceeds
// int64's range. On success it returns errcode.OK.
//
// The exactly-19-digit case is resolved by splitting the leading digit from
// the trailing 18 and comparing against the decomposed int64 bound. This
// avoids relying on wraparound to detect overflow.
func ParseInt(data []byte) (int64, errcode.Code) {
	if len(data) == 0 {
		return 0, errcode.InvalidInt
	}

	neg := false
	i := 0
	switch data[0] {
	case '-':
		neg = true
		i = 1
	case '+':
		i = 1
	}
	digits := data[i:]

	if len(digits) == 0 {
		return 0, errcode.InvalidInt
	}
	for _, b := range digits {
		if b < '0' || b > '9' {
			return 0, errcode.InvalidInt
		}
	}

	switch {
	case len(digits) > maxDigits64:
		return 0, errcode.IntOverflow

	case len(digits) == maxDigits64:
		head := int64(digits[0]-'0') * 1_000_000_000_000_000_000
		var tail int64
		for _, b := range digits[1:] {
			tail = tail*10 + int64(b-'0')
		}
		if neg {
			if (math.MinInt64 + head) > -tail {
				return 0, errcode.IntOverflow
			}
			return -tail - head, errcode.OK
		}
		if (math.MaxInt64 - head) < tail {
			return 0, errcode.IntOverflow
		}
		return tail + head, errcode.OK

	default:
		var v int64
		for _, b := range digits {
			v = v*10 + int64(b-'0')
		}
		if neg {
			v = -v
		}
		return v, errcode.OK
	}
}

// FormatInt renders i as a canonical decimal integer: no leading zeros, a
// single leading '-' for negative values, and no leading '+'.
func FormatInt(i int64) []byte {
	return appendInt(nil, i)
}

func appendInt(dst []byte, i int64) []byte {
	if i == 0 {
		return append(dst, '0')
	}
	neg := i < 0
	// math.MinInt64 cannot be negated in int64: -i wraps back to
	// math.MinInt64, whose uint64 conversion is its magnitude 2**63.
	var buf [20]byte
	pos := len(buf)
	u := uint64(i)
	if neg {
		u = uint64(-i)
	}
	for u > 0 {
		pos--
		buf[pos] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		dst = append(dst, '-')
	}
	return append(dst, buf[pos:]...)
}
