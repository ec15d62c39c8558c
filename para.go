// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
)

// paraText returns the text of the run of lines starting at s[start:],
// which ends at a blank line, a line starting a block quote or an ATX heading,
// or the end of s.
// It also reports whether the run ended before the end of s.
func paraText(s string, start int) (text string, end int, closed bool) {
	end = lineEnd(s, start)
	for end < len(s) {
		if isBlank(s, end) {
			closed = true
			break
		}
		if _, ok := trimQuote(s, end); ok {
			closed = true
			break
		}
		if _, _, ok := trimATX(s, end); ok {
			closed = true
			break
		}
		end = lineEnd(s, end)
	}
	text = strings.TrimSuffix(s[start:end], "\n")
	return text, end, closed
}

// parseParagraph is a block rule for a paragraph:
// a run of lines of inline content that is followed by a blank line
// (or by a block quote or ATX heading).
func (p *parser) parseParagraph(s string, start int) (string, int, bool) {
	i, ok := nonIndentSpace(s, start)
	if !ok {
		return "", 0, false
	}
	text, end, closed := paraText(s, i)
	if !closed {
		return "", 0, false
	}
	return p.r.Paragraph(p.inlines(text)), end, true
}

// parsePlain is the last block rule, which always matches:
// a run of lines of inline content that is not wrapped as a paragraph.
// This is how the text of a tight list item renders.
func (p *parser) parsePlain(s string, start int) (string, int, bool) {
	i := skipSpaceTab(s, start)
	if i >= len(s) {
		return "", len(s), i > start
	}
	text, end, _ := paraText(s, i)
	return p.inlines(text), end, true
}
