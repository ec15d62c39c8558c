// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
)

// parseBlockQuote is a block rule for a block quote.
//
// A quote is a sequence of groups, each made of a line starting with >,
// any following lazy continuation lines (non-blank lines without >),
// and any blank lines after them.
// The > markers are removed and the remaining text is parsed as blocks.
func (p *parser) parseBlockQuote(s string, start int) (string, int, bool) {
	if p.depth >= maxNesting {
		return "", 0, false
	}
	var body strings.Builder
	i := start
	for {
		j, ok := trimQuote(s, i)
		if !ok {
			break
		}
		e := lineEnd(s, j)
		body.WriteString(s[j:e])
		i = e

		// Lazy continuation lines.
		for i < len(s) && !isBlank(s, i) {
			if _, ok := trimQuote(s, i); ok {
				break
			}
			e := lineEnd(s, i)
			body.WriteString(s[i:e])
			i = e
		}

		var blanks int
		i, blanks = countBlankLines(s, i)
		body.WriteString(strings.Repeat("\n", blanks))
	}
	if i == start {
		return "", 0, false
	}

	p.depth++
	inner := p.blocks(ensureNL(body.String()))
	p.depth--
	return p.r.BlockQuote(inner), i, true
}

// trimQuote matches a block quote marker (up to three spaces, >, and an optional space)
// at s[i:], returning the offset of the quoted text.
func trimQuote(s string, i int) (int, bool) {
	j, ok := nonIndentSpace(s, i)
	if !ok || j >= len(s) || s[j] != '>' {
		return 0, false
	}
	j++
	if j < len(s) && s[j] == ' ' {
		j++
	}
	return j, true
}

// ensureNL returns s with a trailing newline added if it lacks one.
func ensureNL(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
