// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

// parseThematicBreak is a block rule for a thematic break,
// usually displayed as a horizontal rule:
// three or more matching -, _, or * characters, optionally separated by spaces,
// alone on a line that is followed by a blank line (or the end of the text).
func (p *parser) parseThematicBreak(s string, start int) (string, int, bool) {
	if !isBreak(s, start) {
		return "", 0, false
	}
	end, _ := trimThematicBreak(s, start)
	return p.r.ThematicBreak(), blankLines(s, end), true
}

// isBreak reports whether a thematic break block starts at s[i:]:
// a break line followed by a blank line or the end of the text.
// List items and their nested lists end before such a line.
func isBreak(s string, i int) bool {
	end, ok := trimThematicBreak(s, i)
	return ok && (end >= len(s) || isBlank(s, end))
}

// trimThematicBreak matches a thematic break line at s[start:],
// without regard to what follows it,
// returning the offset of the next line.
func trimThematicBreak(s string, start int) (int, bool) {
	i, ok := nonIndentSpace(s, start)
	if !ok || i >= len(s) {
		return 0, false
	}
	c := s[i]
	if c != '-' && c != '_' && c != '*' {
		return 0, false
	}
	n := 0
	for i < len(s) && s[i] == c {
		n++
		i = skipSpaceTab(s, i+1)
	}
	if n < 3 || i < len(s) && s[i] != '\n' {
		return 0, false
	}
	if i < len(s) {
		i++
	}
	return i, true
}
