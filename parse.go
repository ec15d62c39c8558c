// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
)

/*

The parser is an ordered-choice recognizer over strings.
Every rule has the form

	func (p *parser) parseX(s string, start int) (out string, end int, ok bool)

and either matches s[start:end], returning the rendered output,
or fails with no effect. A rule for a container captures the text of its
children (block quote lines without their > markers, list item lines
without their indentation), parses that text as a new string, and passes
the rendered children to the renderer.

Blocks are parsed line by line from the normalized input.
At each block boundary, blank lines are skipped and then the block rules
are tried in this order:

	block quote
	verbatim (indented code)
	thematic break
	bullet list
	ordered list
	ATX heading
	raw HTML block
	Setext heading
	reference definition (renders as nothing)
	paragraph
	plain text

Plain text always matches a non-blank line, so the block loop consumes
all of its input.

Inline content is parsed from a span: the text of a paragraph, heading,
or link label with its trailing newline removed. See inline.go.

Nesting (block quotes, lists, emphasis, links) is limited to maxNesting
levels. Past that limit the container rules fail, and the text falls
through to the rules after them, so very deep input degrades to
literal text instead of exhausting the stack.

*/

// maxNesting is the maximum nesting depth of containers.
const maxNesting = 100

// A parser holds the state of a single conversion.
type parser struct {
	r     Renderer
	opts  Options
	refs  *RefTable
	depth int
	err   error
}

// blocks parses s as a sequence of blocks and returns their rendering.
func (p *parser) blocks(s string) string {
	out, end := p.section(s, 0, 0)
	if end < len(s) {
		p.fail(s, end)
	}
	return out
}

// section parses blocks from s[i:], returning the rendered blocks
// joined by the renderer's block separator and the offset where it stopped.
//
// With Options.Containers, a heading's section holds the blocks that follow it,
// up to the next heading of the same or higher level.
// A section for a heading of the given level (0 for the whole text)
// stops without consuming such a heading.
func (p *parser) section(s string, i, level int) (string, int) {
	var out []string
	for {
		i = blankLines(s, i)
		if i >= len(s) {
			break
		}
		h, raw, ok := p.heading(s, i)
		if ok {
			if p.opts.Containers && level > 0 && h.level <= level {
				break
			}
			end := h.end
			var content string
			if p.opts.Containers {
				content, end = p.section(s, end, h.level)
			}
			out = append(out, p.r.Heading(h.level, h.title, content))
			i = end
			continue
		}
		var (
			frag string
			end  int
		)
		if raw != nil {
			frag, end, ok = raw.out, raw.end, true
		} else {
			frag, end, ok = p.block(s, i)
		}
		if !ok || end <= i {
			p.fail(s, i)
			break
		}
		if frag != "" {
			out = append(out, frag)
		}
		i = end
	}
	return strings.Join(out, p.r.Interblock()), i
}

// A rawBlock is a raw HTML block found while looking for a heading.
type rawBlock struct {
	out string
	end int
}

// heading reports whether a heading is the block at s[i:].
// Higher priority block rules are tried first,
// so that a heading is only recognized where they all fail.
// When a raw HTML block takes priority instead,
// heading returns it so that it is not matched twice.
func (p *parser) heading(s string, i int) (heading, *rawBlock, bool) {
	if !p.headingFirst(s, i) {
		return heading{}, nil, false
	}
	if h, ok := p.parseATXHeading(s, i); ok {
		return h, nil, true
	}
	if out, end, ok := p.parseDisplayHTML(s, i); ok {
		return heading{}, &rawBlock{out, end}, false
	}
	if h, ok := p.parseSetextHeading(s, i); ok {
		return h, nil, true
	}
	return heading{}, nil, false
}

// headingFirst reports whether none of the block rules with priority
// over the ATX heading rule could match at s[i:].
// It only looks at the start of the line, so it may report false
// when those rules would fail after all; in that case heading
// defers to block, which tries every rule in order.
func (p *parser) headingFirst(s string, i int) bool {
	if _, ok := trimQuote(s, i); ok {
		return false
	}
	if _, ok := indent(s, i); ok {
		return false
	}
	if _, ok := trimThematicBreak(s, i); ok {
		return false
	}
	return !isStarter(s, i)
}

// block parses the non-heading block at s[i:].
func (p *parser) block(s string, i int) (string, int, bool) {
	rules := [...]func(*parser, string, int) (string, int, bool){
		(*parser).parseBlockQuote,
		(*parser).parseVerbatim,
		(*parser).parseThematicBreak,
		(*parser).parseBulletList,
		(*parser).parseOrderedList,
		(*parser).parseATXBlock,
		(*parser).parseDisplayHTML,
		(*parser).parseSetextBlock,
		(*parser).parseReference,
		(*parser).parseParagraph,
		(*parser).parsePlain,
	}
	for _, rule := range rules {
		if out, end, ok := rule(p, s, i); ok {
			return out, end, true
		}
	}
	return "", 0, false
}

// parseATXBlock renders an ATX heading that heading did not claim,
// which happens only when a higher priority rule looked like it
// might match but did not.
func (p *parser) parseATXBlock(s string, i int) (string, int, bool) {
	h, ok := p.parseATXHeading(s, i)
	if !ok {
		return "", 0, false
	}
	return p.r.Heading(h.level, h.title, ""), h.end, true
}

// parseSetextBlock is parseATXBlock for Setext headings.
func (p *parser) parseSetextBlock(s string, i int) (string, int, bool) {
	h, ok := p.parseSetextHeading(s, i)
	if !ok {
		return "", 0, false
	}
	return p.r.Heading(h.level, h.title, ""), h.end, true
}
