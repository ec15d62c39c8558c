// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
)

// A span is the text of a single inline run, such as a paragraph,
// a heading title, or a link label, together with the memo tables
// that keep parsing it from taking exponential time.
//
// The text of a span never contains a blank line or a trailing newline,
// so every newline inside a span is a soft line break.
type span struct {
	s     string
	emph  map[emphKey]emphResult
	ticks backtickParser
	html  htmlScan
}

// emphKey identifies an attempt to parse emphasis
// with an n-character delimiter at offset pos.
type emphKey struct {
	pos int
	n   int
}

type emphResult struct {
	out string
	end int
	ok  bool
}

// inlines parses s as a run of inline content and returns its rendering.
// Every byte of s is consumed: any byte that begins no other construct
// is literal text.
func (p *parser) inlines(s string) string {
	st := &span{s: s}
	var b strings.Builder
	for i := 0; i < len(s); {
		out, end := p.inline(st, i)
		b.WriteString(out)
		i = end
	}
	return b.String()
}

// nestedInlines is inlines for text nested inside another inline construct.
func (p *parser) nestedInlines(s string) string {
	p.depth++
	defer func() { p.depth-- }()
	return p.inlines(s)
}

// inline parses one inline construct at st.s[i:] and returns its rendering
// and the offset just past it. It always consumes at least one byte.
//
// The alternatives are tried in priority order:
// literal text, whitespace, line ending,
// long runs of * or _, strong emphasis, emphasis,
// image, link, code span, autolink, inline HTML, entity, escape,
// and finally the single character as a literal symbol.
func (p *parser) inline(st *span, i int) (string, int) {
	s := st.s
	c := s[i]
	if !isSpecial(c) {
		j := i + 1
		for j < len(s) && !isSpecial(s[j]) {
			j++
		}
		return p.r.Plain(s[i:j]), j
	}

	var (
		out string
		end int
		ok  bool
	)
	switch c {
	case ' ', '\t':
		return p.parseSpace(st, i)
	case '\n':
		return p.parseEndline(st, i)
	case '*', '_':
		if end, ok = delimLine(s, i); ok {
			return p.r.Plain(s[i:end]), end
		}
		if out, end, ok = p.parseEmph(st, i, 2); ok {
			return out, end
		}
		if out, end, ok = p.parseEmph(st, i, 1); ok {
			return out, end
		}
	case '!':
		if out, end, ok = p.parseImage(st, i); ok {
			return out, end
		}
	case '[':
		if out, end, ok = p.parseLink(st, i); ok {
			return out, end
		}
	case '`':
		return p.parseCodeSpan(st, i)
	case '<':
		if out, end, ok = p.parseAutoLink(st, i); ok {
			return out, end
		}
		if out, end, ok = p.parseHTMLTag(st, i); ok {
			return out, end
		}
	case '&':
		if out, end, ok = p.parseEntity(st, i); ok {
			return out, end
		}
	case '\\':
		if out, end, ok = p.parseEscape(st, i); ok {
			return out, end
		}
	}
	return p.r.Plain(s[i : i+1]), i + 1
}

// parseSpace is an inline rule for a run of spaces and tabs.
//
// Spaces at the end of the span render as nothing.
// Two or more spaces before a line ending make a hard line break;
// otherwise the spaces and any line ending render as a single space.
// Leading spaces on the next line are dropped.
func (p *parser) parseSpace(st *span, start int) (string, int) {
	s := st.s
	i := skipSpaceTab(s, start)
	if i >= len(s) {
		return "", i
	}
	if s[i] != '\n' {
		return p.r.Space(), i
	}
	j := skipSpaceTab(s, i+1)
	if j >= len(s) {
		return "", j
	}
	if i-start >= 2 {
		return p.r.LineBreak(), j
	}
	return p.r.Space(), j
}

// parseEndline is an inline rule for a soft line break.
// Leading spaces on the next line are dropped.
func (p *parser) parseEndline(st *span, start int) (string, int) {
	j := skipSpaceTab(st.s, start+1)
	if j >= len(st.s) {
		return "", j
	}
	return p.r.Space(), j
}

// parseEscape is an inline rule for a backslash-escaped punctuation character.
func (p *parser) parseEscape(st *span, start int) (string, int, bool) {
	s := st.s
	if start+1 < len(s) && isPunct(s[start+1]) {
		return p.r.Escaped(s[start+1 : start+2]), start + 2, true
	}
	return "", 0, false
}

// delimLine reports whether s[i:] begins a run of * or _ that cannot be emphasis:
// four or more in a row, or any run with spaces (or the span boundary) on both sides.
// Such runs are literal text.
func delimLine(s string, i int) (int, bool) {
	c := s[i]
	j := i
	for j < len(s) && s[j] == c {
		j++
	}
	if j-i >= 4 {
		return j, true
	}
	before := i == 0 || isSpaceNL(s[i-1])
	after := j == len(s) || isSpaceNL(s[j])
	if before && after {
		return j, true
	}
	return 0, false
}

// parseEmph is an inline rule for emphasis (n == 1) or strong emphasis (n == 2),
// delimited by n copies of * or _ on each side.
//
// The opening delimiter must be followed by a non-space character.
// The content is one or more inline constructs, and the emphasis ends at the
// first closing delimiter that follows a non-space character.
// Results are memoized per position so that unclosed delimiters
// cost linear rather than exponential time to reject.
func (p *parser) parseEmph(st *span, start, n int) (string, int, bool) {
	key := emphKey{start, n}
	if r, ok := st.emph[key]; ok {
		return r.out, r.end, r.ok
	}
	out, end, ok := p.emph(st, start, n)
	if st.emph == nil {
		st.emph = make(map[emphKey]emphResult)
	}
	st.emph[key] = emphResult{out, end, ok}
	return out, end, ok
}

func (p *parser) emph(st *span, start, n int) (string, int, bool) {
	if p.depth >= maxNesting {
		return "", 0, false
	}
	s := st.s
	c := s[start]
	if !hasDelim(s, start, c, n) {
		return "", 0, false
	}
	i := start + n
	if i >= len(s) || isSpaceNL(s[i]) {
		return "", 0, false
	}

	p.depth++
	defer func() { p.depth-- }()

	var b strings.Builder
	for first := true; i < len(s); first = false {
		if !first && !isSpaceNL(s[i-1]) && hasDelim(s, i, c, n) {
			if n == 2 {
				return p.r.Strong(b.String()), i + n, true
			}
			return p.r.Emph(b.String()), i + n, true
		}
		out, end := p.inline(st, i)
		b.WriteString(out)
		i = end
	}
	return "", 0, false
}

// hasDelim reports whether s[i:] begins with n copies of c.
func hasDelim(s string, i int, c byte, n int) bool {
	if i+n > len(s) {
		return false
	}
	for k := 0; k < n; k++ {
		if s[i+k] != c {
			return false
		}
	}
	return true
}
