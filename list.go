// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
)

// A chunk is one piece of the captured text of a list item.
//
// The item's text is re-parsed as blocks once the list is known to be
// tight or loose. A nested list captured without a blank line before it
// must still start a new block rather than continue the item's text,
// so it is kept in its own chunk and the re-parse splits there.
type chunk struct {
	kind chunkKind
	text string
}

type chunkKind int

const (
	chunkText   chunkKind = iota // text continuing the current segment
	chunkNested                  // a nested list, which starts a new segment
)

// A marker matches a list marker at the start of a line,
// returning the offset of the item text and the item number (0 for bullets).
type marker func(s string, i int) (end, num int, ok bool)

// bulletMarker matches a bullet list marker: up to three spaces,
// one of * + -, and a space.
func bulletMarker(s string, i int) (end, num int, ok bool) {
	j := i
	for j < len(s) && j-i < 3 && s[j] == ' ' {
		j++
	}
	if j >= len(s) || s[j] != '*' && s[j] != '+' && s[j] != '-' {
		return 0, 0, false
	}
	return markerSpace(s, i, j+1, 1)
}

// orderedMarker matches an ordered list marker: up to three spaces,
// one to nine digits, a period, and a space.
func orderedMarker(s string, i int) (end, num int, ok bool) {
	j := i
	for j < len(s) && j-i < 3 && s[j] == ' ' {
		j++
	}
	d := j
	for j < len(s) && isDigit(s[j]) {
		if j-d >= 9 {
			return 0, 0, false
		}
		num = num*10 + int(s[j]-'0')
		j++
	}
	if j == d || j >= len(s) || s[j] != '.' {
		return 0, 0, false
	}
	end, _, ok = markerSpace(s, i, j+1, j+1-d)
	return end, num, ok
}

// markerSpace matches the spacing after a list marker of the given width
// ending at s[j], for a line starting at s[i].
// The marker must be followed by a space, tab, or line ending.
// The spaces after it are part of the marker as long as the marker
// and its leading spaces fill less than a tab stop: narrow markers
// such as "-" take up to three spaces and wide ones such as "10." take one.
func markerSpace(s string, i, j, width int) (end, num int, ok bool) {
	if j >= len(s) || s[j] != ' ' && s[j] != '\t' && s[j] != '\n' {
		return 0, 0, false
	}
	if s[j] == '\t' {
		return j + 1, 0, true
	}
	extra := max(tabStop-(j-i-width)-width, 1)
	for k := 0; k < extra && j < len(s) && s[j] == ' '; k++ {
		j++
	}
	return j, 0, true
}

// isStarter reports whether the line at s[i:] starts a list item of either kind.
func isStarter(s string, i int) bool {
	if _, _, ok := bulletMarker(s, i); ok {
		return true
	}
	_, _, ok := orderedMarker(s, i)
	return ok
}

// startsItem reports whether the line at s[i:] starts a list item using m.
// A thematic break such as "* * *" is not an item.
func startsItem(s string, i int, m marker) bool {
	if _, ok := trimThematicBreak(s, i); ok {
		return false
	}
	_, _, ok := m(s, i)
	return ok
}

// itemLines captures the first line of an item, starting at s[i:],
// and the lines that continue it: non-blank lines that do not start
// a list item, even after one level of indentation, or a thematic break.
// The indentation of continuation lines is removed.
func itemLines(s string, i int) (string, int) {
	var b strings.Builder
	e := lineEnd(s, i)
	b.WriteString(s[i:e])
	i = e
	for i < len(s) && !isBlank(s, i) && !isBreak(s, i) {
		j := optionalIndent(s, i)
		if isStarter(s, j) {
			break
		}
		e := lineEnd(s, j)
		b.WriteString(s[j:e])
		i = e
	}
	return ensureNL(b.String()), i
}

// nestedLines captures a nested list directly following an item's lines:
// the non-blank lines from s[i:] up to the next line that starts
// a sibling item or a thematic break, with one level of indentation removed.
func nestedLines(s string, i int) (string, int, bool) {
	var b strings.Builder
	start := i
	for i < len(s) && !isBlank(s, i) && !isStarter(s, i) && !isBreak(s, i) {
		j := optionalIndent(s, i)
		e := lineEnd(s, j)
		b.WriteString(s[j:e])
		i = e
	}
	if i == start {
		return "", 0, false
	}
	return ensureNL(b.String()), i, true
}

// continuationLines captures a continuation of a loose item:
// blank lines followed by an indented line and the lines continuing it.
// The blank lines are kept so that the continuation starts a new block.
func continuationLines(s string, i int) (string, int, bool) {
	k, blanks := countBlankLines(s, i)
	if k >= len(s) {
		return "", 0, false
	}
	j, ok := indent(s, k)
	if !ok {
		return "", 0, false
	}
	text, end := itemLines(s, j)
	return strings.Repeat("\n", blanks) + text, end, true
}

// tightItem captures an item of a tight list:
// a marker, the item's lines, and an optional nested list,
// not followed by indented content after blank lines.
func tightItem(s string, i int, m marker) ([]chunk, int, int, bool) {
	if !startsItem(s, i, m) {
		return nil, 0, 0, false
	}
	j, num, _ := m(s, i)
	text, k := itemLines(s, j)
	chunks := []chunk{{chunkText, text}}
	if nested, e, ok := nestedLines(s, k); ok {
		chunks = append(chunks, chunk{chunkNested, nested})
		k = e
	}
	if b := blankLines(s, k); b < len(s) {
		if _, ok := indent(s, b); ok {
			return nil, 0, 0, false
		}
	}
	return chunks, k, num, true
}

// looseItem captures an item of a loose list:
// a marker, the item's lines, any number of nested lists and
// indented continuation blocks, and the blank lines after them.
// The captured text ends in blank lines, so its last block is a paragraph.
func looseItem(s string, i int, m marker) ([]chunk, int, int, bool) {
	if !startsItem(s, i, m) {
		return nil, 0, 0, false
	}
	j, num, _ := m(s, i)
	text, k := itemLines(s, j)
	chunks := []chunk{{chunkText, text + "\n"}}
	for {
		if nested, e, ok := nestedLines(s, k); ok {
			chunks = append(chunks, chunk{chunkNested, nested})
			k = e
			continue
		}
		if cont, e, ok := continuationLines(s, k); ok {
			chunks = append(chunks, chunk{chunkText, cont})
			k = e
			continue
		}
		break
	}
	chunks[len(chunks)-1].text += "\n\n"
	return chunks, blankLines(s, k), num, true
}

// parseBulletList is a block rule for a bullet list.
func (p *parser) parseBulletList(s string, start int) (string, int, bool) {
	return p.parseList(s, start, bulletMarker, false)
}

// parseOrderedList is a block rule for an ordered list.
func (p *parser) parseOrderedList(s string, start int) (string, int, bool) {
	return p.parseList(s, start, orderedMarker, true)
}

// parseList parses a list whose items start with m.
//
// A list is tight if it is a run of tight items that is not followed,
// after blank lines, by another item. Otherwise it is loose.
// Items of a tight list render their text without paragraph wrapping.
func (p *parser) parseList(s string, start int, m marker, ordered bool) (string, int, bool) {
	if p.depth >= maxNesting {
		return "", 0, false
	}

	var items [][]chunk
	first := 0
	i := start
	for {
		c, end, num, ok := tightItem(s, i, m)
		if !ok {
			break
		}
		if items == nil {
			first = num
		}
		items = append(items, c)
		i = end
	}
	if items != nil {
		if k := blankLines(s, i); !startsItem(s, k, m) {
			return p.renderList(items, true, ordered, first), k, true
		}
	}

	items = nil
	i = start
	for {
		c, end, num, ok := looseItem(s, i, m)
		if !ok {
			break
		}
		if items == nil {
			first = num
		}
		items = append(items, c)
		i = end
	}
	if items == nil {
		return "", 0, false
	}
	return p.renderList(items, false, ordered, first), i, true
}

// renderList re-parses each item's text as blocks and renders the list.
func (p *parser) renderList(items [][]chunk, tight, ordered bool, first int) string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = p.r.ListItem(p.item(c))
	}
	if !ordered {
		return p.r.BulletList(out, tight)
	}
	if !p.opts.StartNum {
		first = 1
	}
	return p.r.OrderedList(out, tight, first)
}

// item parses the captured chunks of one item as blocks.
// Each nested-list chunk starts a new segment;
// the rendered segments are joined as separate blocks.
func (p *parser) item(chunks []chunk) string {
	p.depth++
	defer func() { p.depth-- }()

	var parts []string
	var seg strings.Builder
	flush := func() {
		if seg.Len() > 0 {
			if out := p.blocks(seg.String()); out != "" {
				parts = append(parts, out)
			}
			seg.Reset()
		}
	}
	for _, c := range chunks {
		if c.kind == chunkNested {
			flush()
		}
		seg.WriteString(c.text)
	}
	flush()
	return strings.Join(parts, p.r.Interblock())
}
