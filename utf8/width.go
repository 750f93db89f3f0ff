package utf8

import "sort"

// wideRanges lists the [lo, hi] code point ranges this package treats as
// occupying two display columns: East Asian Wide and Fullwidth blocks, plus
// the emoji ranges commonly rendered double-width by terminals. This is a
// static table — a sorted range list with a binary search,
// the approach rune-width libraries in the wider Go ecosystem take, kept
// in-repo because no such library appears among this module's dependencies.
var wideRanges = [][2]rune{
	{0x1100, 0x115F},   // Hangul Jamo
	{0x2329, 0x232A},   // angle brackets
	{0x2E80, 0x303E},   // CJK Radicals, Kangxi Radicals, CJK symbols/punct
	{0x3041, 0x33FF},   // Hiragana .. CJK Compatibility
	{0x3400, 0x4DBF},   // CJK Unified Ideographs Extension A
	{0x4E00, 0x9FFF},   // CJK Unified Ideographs
	{0xA000, 0xA4CF},   // Yi Syllables/Radicals
	{0xAC00, 0xD7A3},   // Hangul Syllables
	{0xF900, 0xFAFF},   // CJK Compatibility Ideographs
	{0xFE30, 0xFE4F},   // CJK Compatibility Forms
	{0xFF00, 0xFF60},   // Fullwidth Forms
	{0xFFE0, 0xFFE6},   // Fullwidth Signs
	{0x1F300, 0x1F5FF}, // Misc Symbols and Pictographs
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F680, 0x1F6FF}, // Transport and Map
	{0x1F900, 0x1F9FF}, // Supplemental Symbols and Pictographs
	{0x20000, 0x3FFFD}, // CJK Unified Ideographs Extension B..
}

// zeroWidthRanges lists combining marks, variation selectors, and format
// controls: code points that occupy no display column of their own.
var zeroWidthRanges = [][2]rune{
	{0x0300, 0x036F},   // Combining Diacritical Marks
	{0x0483, 0x0489},   // Combining Cyrillic
	{0x0591, 0x05BD},   // Hebrew points
	{0x0610, 0x061A},   // Arabic marks
	{0x064B, 0x065F},   // Arabic combining marks
	{0x0670, 0x0670},
	{0x06D6, 0x06DC},
	{0x06DF, 0x06E4},
	{0x0900, 0x0902},   // Devanagari signs
	{0x093A, 0x093A},
	{0x093C, 0x093C},
	{0x0941, 0x0948}, // Devanagari vowel signs (combining)
	{0x0951, 0x0957},
	{0x0962, 0x0963},
	{0x1AB0, 0x1AFF}, // Combining Diacritical Marks Extended
	{0x1DC0, 0x1DFF}, // Combining Diacritical Marks Supplement
	{0x200B, 0x200F}, // zero-width space/joiners, directional marks
	{0x2060, 0x2064}, // word joiner, invisible operators
	{0x20D0, 0x20FF}, // Combining Diacritical Marks for Symbols
	{0x2DE0, 0x2DFF}, // Combining Cyrillic Extended-A
	{0x3099, 0x309A}, // Combining Katakana-Hiragana marks
	{0xFE00, 0xFE0F}, // Variation Selectors
	{0xFE20, 0xFE2F}, // Combining Half Marks
	{0xFEFF, 0xFEFF}, // zero width no-break space / BOM
	{0x1D167, 0x1D169}, // Musical symbol combining flags
	{0x1DA00, 0x1DA6C}, // Sutton SignWriting combining marks
	{0xE0100, 0xE01EF}, // Variation Selectors Supplement
}

func inRanges(ranges [][2]rune, r rune) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i][1] >= r })
	return i < len(ranges) && ranges[i][0] <= r
}

// RuneWidth returns the display width of r: 0 for combining marks,
// variation selectors, and format controls; 2 for East Asian wide and
// fullwidth code points (including most emoji); 1 otherwise, including
// control characters, surrogate values, and invalid (out-of-range) code
// points.
func RuneWidth(r rune) int {
	switch {
	case r < 0 || r > maxRune:
		return 1
	case isSurrogate(r):
		return 1
	case inRanges(zeroWidthRanges, r):
		return 0
	case inRanges(wideRanges, r):
		return 2
	default:
		return 1
	}
}

// StringWidth returns the sum of RuneWidth over every code point decoded
// from s, using the same lenient decoding as DecodeRune.
func StringWidth(s []byte) int {
	width := 0
	for i := 0; i < len(s); {
		r, next := NextRune(s, i)
		width += RuneWidth(r)
		i = next
	}
	return width
}
