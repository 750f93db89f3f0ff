package lex

// isSpaceOrTab reports whether b is inter-token whitespace on a line.
func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }

// isDigit reports whether b is an ASCII decimal digit.
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// isKeyChar reports whether b may appear in a bare key, per the grammar
// bare-key := [A-Za-z0-9_+\-./]+.
func isKeyChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '_', '+', '-', '.', '/':
		return true
	}
	return false
}

func isControl(b byte) bool {
	return b < 0x20 || b == 0x7F
}
