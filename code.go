// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
)

// parseVerbatim is a block rule for an indented code block:
// one or more lines indented by four spaces (or a tab),
// possibly separated by blank lines.
// The indentation is removed, interior blank lines are kept as empty lines,
// and blank lines after the last indented line are not part of the block.
func (p *parser) parseVerbatim(s string, start int) (string, int, bool) {
	var b strings.Builder
	end := start
	for i := start; ; {
		k, blanks := countBlankLines(s, i)
		if k >= len(s) {
			break
		}
		if _, ok := indent(s, k); !ok {
			break
		}
		for ; blanks > 0; blanks-- {
			b.WriteByte('\n')
		}
		for k < len(s) && !isBlank(s, k) {
			j, ok := indent(s, k)
			if !ok {
				break
			}
			e := lineEnd(s, j)
			b.WriteString(s[j:e])
			k = e
		}
		i, end = k, k
	}
	if end == start {
		return "", 0, false
	}
	text := b.String()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return p.r.Verbatim(text), end, true
}

// maxBackticks is the maximum number of backticks allowed for an inline code span.
// To avoid super-linear (not quite quadratic) behavior, we need to track the last position
// where a run of exactly N backticks was seen, for each possible N, rather than scan
// backward to find them. This means we must place some limit on N (or use a map).
// cmark-gfm imposes a limit of 80, which seems good enough.
// (If your backticks don't fit on a punch card, you can't use them!)
const maxBackticks = 80

// A backtickParser holds the state for parseCodeSpan looking for backticks.
type backtickParser struct {
	last    [maxBackticks]int // last[n] = start offset where final run of n backticks was seen
	scanned bool              // whether we've scanned the string already
}

// parseCodeSpan is an inline rule for a code span,
// which is an n-backtick-delimited run of text for some n.
// A code span always matches: if there is no closing run of exactly n backticks,
// the whole opening run is literal text.
//
// The naive implementation of backtick scanning would take O(n√n) time on an input like
//
//	` `` ``` ```` ````` `````` ``````` ````````
//
// During an unsuccessful scan we record the last location of every run of
// n backticks for all n, in an array indexed by n-1.
// The next time we scan the same span, we can tell whether it will
// be successful by checking whether start < last[n-1]. If not, there's no
// terminator out there and we can avoid scanning.
// Otherwise, there's a guaranteed terminator, so a successful scan
// pays for itself by consuming the scanned text.
func (p *parser) parseCodeSpan(st *span, start int) (string, int) {
	s := st.s
	b := &st.ticks

	// Count leading backticks. Need to find that many again.
	n := 1
	for start+n < len(s) && s[start+n] == '`' {
		n++
	}
	if n > len(b.last) || b.scanned && b.last[n-1] < start+n {
		return p.r.Plain(s[start : start+n]), start + n
	}

	for end := start + n; end < len(s); {
		if s[end] != '`' {
			end++
			continue
		}
		estart := end
		for end < len(s) && s[end] == '`' {
			end++
		}
		m := end - estart
		if !b.scanned && m <= len(b.last) {
			b.last[m-1] = estart
		}
		if m == n {
			return p.r.Code(codeText(s[start+n : estart])), end
		}
	}
	b.scanned = true

	// No match, so none of these backticks count: skip them all.
	// For example ``x` is not a single backtick followed by a code span.
	return p.r.Plain(s[start : start+n]), start + n
}

// scanCodeSpan is the memo-free form of parseCodeSpan, used to skip
// over code spans while scanning for the end of a link label.
// It returns the code text, the offset just past the span,
// and whether a closing run was found.
// If not, end is just past the opening run.
func scanCodeSpan(s string, start int) (text string, end int, ok bool) {
	n := 1
	for start+n < len(s) && s[start+n] == '`' {
		n++
	}
	for end = start + n; end < len(s); {
		if s[end] != '`' {
			end++
			continue
		}
		estart := end
		for end < len(s) && s[end] == '`' {
			end++
		}
		if end-estart == n {
			return codeText(s[start+n : estart]), end, true
		}
	}
	return "", start + n, false
}

// codeText returns the content of a code span given the text between its backtick runs.
// Line endings are converted to single spaces.
// If the text starts and ends with a space and is not all spaces,
// one space is removed from start and end, so that a lone backquote
// can be quoted by surrounding it with spaces.
func codeText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && strings.Trim(text, " ") != "" {
		text = text[1 : len(text)-1]
	}
	return text
}

var ticks = "````````````````````````````````````````````````````````````````" // 64 ticks

// maxRun returns the length of the longest run of b bytes in s.
func maxRun(s string, b byte) int {
	m := 0
	n := 0
	for i := range len(s) {
		if s[i] == b {
			n++
			m = max(m, n)
		} else {
			n = 0
		}
	}
	return m
}

// writeTicks writes n backticks to b.
func writeTicks(b *strings.Builder, n int) {
	for n > len(ticks) {
		b.WriteString(ticks)
		n -= len(ticks)
	}
	b.WriteString(ticks[:n])
}
