// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
)

// A heading is a recognized heading waiting to be rendered.
// Rendering is deferred so that, with Options.Containers,
// the blocks belonging to the heading's section can be collected first.
type heading struct {
	level int
	title string // rendered title
	end   int
}

// parseATXHeading is a block rule for an ATX heading, like "## Heading".
// The title is the rest of the line, with any closing run of #s removed,
// whether or not a space separates it from the title.
func (p *parser) parseATXHeading(s string, start int) (heading, bool) {
	level, i, ok := trimATX(s, start)
	if !ok {
		return heading{}, false
	}
	end := lineEnd(s, i)
	text := trimSpaceTab(strings.TrimSuffix(s[i:end], "\n"))

	// Remove any run of trailing '#'s and the spaces before it.
	// A backslash-escaped '#' stays in the title.
	inner := strings.TrimRight(text, "#")
	if inner != text && strings.HasSuffix(inner, `\`) {
		inner = text[:len(inner)+1]
	}
	text = trimRightSpaceTab(inner)
	return heading{level, p.inlines(text), end}, true
}

// trimATX matches an ATX heading prefix
// (optional spaces and then 1-6 #s) at s[start:],
// reporting the heading level and the offset of the title text.
func trimATX(s string, start int) (level, end int, ok bool) {
	i, ok := nonIndentSpace(s, start)
	if !ok {
		return 0, 0, false
	}
	n := 0
	for i < len(s) && s[i] == '#' {
		n++
		i++
	}
	if n == 0 || n > 6 {
		return 0, 0, false
	}
	return n, i, true
}

// parseSetextHeading is a block rule for a Setext heading:
// a line of text underlined by a run of = (level 1) or - (level 2).
//
// See https://spec.commonmark.org/0.31.2/#setext-headings.
func (p *parser) parseSetextHeading(s string, start int) (heading, bool) {
	i, ok := nonIndentSpace(s, start)
	if !ok || isBlank(s, start) {
		return heading{}, false
	}
	next := lineEnd(s, start)
	if next >= len(s) {
		return heading{}, false
	}
	level, end, ok := trimSetext(s, next)
	if !ok {
		return heading{}, false
	}
	text := trimSpaceTab(lineText(s, i))
	return heading{level, p.inlines(text), end}, true
}

// trimSetext matches a Setext heading underline
// (optional spaces and then only -'s or ='s
// followed by optional spaces and EOL) at s[start:],
// reporting the heading level and the offset of the next line.
func trimSetext(s string, start int) (level, end int, ok bool) {
	i, ok := nonIndentSpace(s, start)
	if !ok || i >= len(s) {
		return 0, 0, false
	}
	c := s[i]
	if c != '-' && c != '=' {
		return 0, 0, false
	}
	for i < len(s) && s[i] == c {
		i++
	}
	i = skipSpaceTab(s, i)
	if i < len(s) && s[i] != '\n' {
		return 0, 0, false
	}
	if i < len(s) {
		i++
	}
	level = 1
	if c == '-' {
		level = 2
	}
	return level, i, true
}
