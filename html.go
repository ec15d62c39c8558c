// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// blockTags is the set of HTML elements that may start a raw HTML block.
var blockTags = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Audio:      true,
	atom.Blockquote: true,
	atom.Canvas:     true,
	atom.Center:     true,
	atom.Dd:         true,
	atom.Del:        true,
	atom.Details:    true,
	atom.Dialog:     true,
	atom.Dir:        true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.Frameset:   true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Iframe:     true,
	atom.Ins:        true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Math:       true,
	atom.Menu:       true,
	atom.Nav:        true,
	atom.Noframes:   true,
	atom.Noscript:   true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Script:     true,
	atom.Section:    true,
	atom.Style:      true,
	atom.Summary:    true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Td:         true,
	atom.Tfoot:      true,
	atom.Th:         true,
	atom.Thead:      true,
	atom.Tr:         true,
	atom.Ul:         true,
	atom.Video:      true,
}

// isBlockTag reports whether name (in any case) names a block-level HTML element.
func isBlockTag(name string) bool {
	return blockTags[atom.Lookup([]byte(strings.ToLower(name)))]
}

// isVoidBlockTag reports whether name is a block element that never has a closing tag.
func isVoidBlockTag(name string) bool {
	return atom.Lookup([]byte(strings.ToLower(name))) == atom.Hr
}

// parseDisplayHTML is a block rule for raw HTML:
// a comment, a standalone tag such as <hr> or <div/>,
// or a complete element whose tag name is a known block tag,
// with nested elements of the same name balanced.
// The markup must end its line; the block is passed through unchanged.
func (p *parser) parseDisplayHTML(s string, start int) (string, int, bool) {
	i, ok := nonIndentSpace(s, start)
	if !ok || i >= len(s) || s[i] != '<' {
		return "", 0, false
	}
	var end int
	if strings.HasPrefix(s[i:], "<!--") {
		k := strings.Index(s[i+4:], "-->")
		if k < 0 {
			return "", 0, false
		}
		end = i + 4 + k + 3
	} else {
		name, j, selfClosing, ok := scanOpenTag(s, i)
		if !ok || !isBlockTag(name) {
			return "", 0, false
		}
		if selfClosing || isVoidBlockTag(name) {
			end = j
		} else {
			m := &elementMatcher{s: s, name: name}
			if end, ok = m.match(i, 0); !ok {
				return "", 0, false
			}
		}
	}

	// Rest of the line must be blank.
	j := skipSpaceTab(s, end)
	if j < len(s) && s[j] != '\n' {
		return "", 0, false
	}
	if j < len(s) {
		j++
	}
	return p.r.DisplayHTML(s[i:end]), j, true
}

// An elementMatcher matches balanced HTML elements with a given tag name.
type elementMatcher struct {
	s      string
	name   string
	failed map[int]bool // offsets where match has already failed
}

// match matches the element whose opening tag is at m.s[i:],
// returning the offset just past its closing tag.
//
// The content is any sequence of nested, fully balanced elements
// with the same name, runs of text without <, and < characters
// that do not begin the closing tag. The closing tag must carry
// the same name as the opening tag.
func (m *elementMatcher) match(i, depth int) (int, bool) {
	if m.failed[i] || depth > maxNesting {
		return 0, false
	}
	name, j, selfClosing, ok := scanOpenTag(m.s, i)
	if !ok || selfClosing || !strings.EqualFold(name, m.name) {
		return 0, false
	}
	s := m.s
	for j < len(s) {
		if s[j] != '<' {
			k := strings.IndexByte(s[j:], '<')
			if k < 0 {
				break
			}
			j += k
			continue
		}
		if name, e, ok := scanClosingTag(s, j); ok && strings.EqualFold(name, m.name) {
			return e, true
		}
		if e, ok := m.match(j, depth+1); ok {
			j = e
			continue
		}
		j++
	}
	if m.failed == nil {
		m.failed = make(map[int]bool)
	}
	m.failed[i] = true
	return 0, false
}

// scanOpenTag parses an HTML open tag at s[i:],
// returning the tag name, the offset just past the tag,
// and whether the tag ends in />.
func scanOpenTag(s string, i int) (name string, end int, selfClosing, ok bool) {
	// An open tag consists of a < character, a tag name, zero or more attributes,
	// optional spaces, tabs, and up to one line ending, an optional / character, and a > character.
	if i >= len(s) || s[i] != '<' {
		return "", 0, false, false
	}
	name, j, ok := parseTagName(s, i+1)
	if !ok {
		return "", 0, false, false
	}

	// zero or more attributes
	for {
		if j >= len(s) || s[j] != ' ' && s[j] != '\t' && s[j] != '\n' && s[j] != '/' && s[j] != '>' {
			return "", 0, false, false
		}
		_, k, ok := parseAttr(s, skipSpace(s, j))
		if !ok {
			break
		}
		j = k
	}

	// optional spaces, tabs, and up to one line ending
	j = skipSpace(s, j)

	// an optional / character
	if j < len(s) && s[j] == '/' {
		selfClosing = true
		j++
	}

	// and a > character.
	if j >= len(s) || s[j] != '>' {
		return "", 0, false, false
	}
	return name, j + 1, selfClosing, true
}

// scanClosingTag parses an HTML closing tag at s[i:],
// returning the tag name and the offset just past the tag.
func scanClosingTag(s string, i int) (name string, end int, ok bool) {
	// A closing tag consists of the string </, a tag name,
	// optional spaces, tabs, and up to one line ending, and the character >.
	if i+2 >= len(s) || s[i] != '<' || s[i+1] != '/' {
		return "", 0, false
	}
	if name, j, ok := parseTagName(s, i+2); ok {
		j = skipSpace(s, j)
		if j < len(s) && s[j] == '>' {
			return name, j + 1, true
		}
	}
	return "", 0, false
}

// parseTagName parses a leading tag name from s[start:],
// returning the tag and the end location.
func parseTagName(s string, start int) (tag string, end int, ok bool) {
	// A tag name consists of an ASCII letter followed by zero or more ASCII letters, digits, or hyphens (-).
	if start >= len(s) || !isLetter(s[start]) {
		return
	}
	end = start + 1
	for end < len(s) && isLDH(s[end]) {
		end++
	}
	return s[start:end], end, true
}

// parseAttr parses a leading attr (or attr=value) from s[start:],
// returning the entire attribute (including the =value) and the end location.
func parseAttr(s string, start int) (attr string, end int, ok bool) {
	// An attribute consists of spaces, tabs, and up to one line ending,
	// an attribute name, and an optional attribute value specification.
	_, end, ok = parseAttrName(s, start)
	if !ok {
		return
	}
	if endVal, ok := parseAttrValueSpec(s, end); ok {
		end = endVal
	}
	return s[start:end], end, true
}

// parseAttrName parses a leading attribute name from s[start:],
// returning the name and the end location.
func parseAttrName(s string, start int) (name string, end int, ok bool) {
	// An attribute name consists of an ASCII letter, _, or :,
	// followed by zero or more ASCII letters, digits, _, ., :, or -.
	if start+1 >= len(s) || (!isLetter(s[start]) && s[start] != '_' && s[start] != ':') {
		return
	}
	end = start + 1
	for end < len(s) && (isLDH(s[end]) || s[end] == '_' || s[end] == '.' || s[end] == ':') {
		end++
	}
	return s[start:end], end, true
}

// parseAttrValueSpec parses a leading attribute value specification
// from s[start:], returning the end location.
func parseAttrValueSpec(s string, start int) (end int, ok bool) {
	// An attribute value specification consists of
	// optional spaces, tabs, and up to one line ending,
	// a = character,
	// optional spaces, tabs, and up to one line ending,
	// and an attribute value.
	end = skipSpace(s, start)
	if end >= len(s) || s[end] != '=' {
		return
	}
	end = skipSpace(s, end+1)

	// An attribute value consists of
	// an unquoted attribute value,
	// a single-quoted attribute value,
	// or a double-quoted attribute value.
	if end < len(s) && (s[end] == '\'' || s[end] == '"') {
		i := strings.IndexByte(s[end+1:], s[end])
		if i < 0 {
			return
		}
		return end + 1 + i + 1, true
	}

	// An unquoted attribute value is a nonempty string of characters
	// not including spaces, tabs, line endings, ", ', =, <, >, or `.
	isAttrVal := func(c byte) bool {
		return c != ' ' && c != '\t' && c != '\n' &&
			c != '"' && c != '\'' &&
			c != '=' && c != '<' && c != '>' && c != '`'
	}
	i := end
	for i < len(s) && isAttrVal(s[i]) {
		i++
	}
	if i == end {
		return
	}
	return i, true
}

// An htmlScan records which inline HTML terminators are known to be
// missing from the rest of a span, so that text like <!-- <!-- <!-- ...
// is not searched repeatedly.
type htmlScan struct {
	noCommentEnd  bool
	noCDATAEnd    bool
	noDeclEnd     bool
	noProcInstEnd bool
}

// parseHTMLTag is an inline rule for raw inline HTML:
// an open tag, a closing tag, a comment, a processing instruction,
// a declaration, or a CDATA section, passed through unchanged.
// The caller has checked that st.s[start] is '<'.
func (p *parser) parseHTMLTag(st *span, start int) (string, int, bool) {
	s := st.s
	if len(s)-start < 3 {
		return "", 0, false
	}
	var end int
	var ok bool
	switch s[start+1] {
	default:
		_, end, _, ok = scanOpenTag(s, start)
	case '/':
		_, end, ok = scanClosingTag(s, start)
	case '!':
		switch s[start+2] {
		case '-':
			end, ok = st.html.comment(s, start)
		case '[':
			end, ok = st.html.marker(s, start, "<![CDATA[", "]]>")
		default:
			if isLetter(s[start+2]) {
				end, ok = st.html.marker(s, start, "<!", ">")
			}
		}
	case '?':
		end, ok = st.html.marker(s, start, "<?", "?>")
	}
	if !ok {
		return "", 0, false
	}
	return p.r.InlineHTML(s[start:end]), end, true
}

// comment matches an HTML comment at s[start:].
func (h *htmlScan) comment(s string, start int) (end int, ok bool) {
	// An HTML comment consists of <!-- + text + -->,
	// where text does not start with > or ->,
	// does not end with -, and does not contain --.
	if strings.HasPrefix(s[start:], "<!-->") {
		return start + len("<!-->"), true
	}
	if strings.HasPrefix(s[start:], "<!--->") {
		return start + len("<!--->"), true
	}
	return h.marker(s, start, "<!--", "-->")
}

// marker is a generalized matcher for the
// various prefix/suffix-denoted HTML markers.
// If s[start:] starts with prefix and is followed eventually by suffix,
// marker returns the offset just past the suffix.
func (h *htmlScan) marker(s string, start int, prefix, suffix string) (end int, ok bool) {
	if !strings.HasPrefix(s[start:], prefix) {
		return 0, false
	}
	switch suffix[0] {
	case ']':
		if h.noCDATAEnd {
			return 0, false
		}
	case '>':
		if h.noDeclEnd {
			return 0, false
		}
	case '-':
		if h.noCommentEnd {
			return 0, false
		}
	case '?':
		if h.noProcInstEnd {
			return 0, false
		}
	}

	if i := strings.Index(s[start+len(prefix):], suffix); i >= 0 {
		return start + len(prefix) + i + len(suffix), true
	}

	switch suffix[0] {
	case '>':
		h.noDeclEnd = true // no > in span
	case ']':
		h.noCDATAEnd = true
	case '-':
		h.noCommentEnd = true
	case '?':
		h.noProcInstEnd = true
	}
	return 0, false
}

// parseEntity is an inline rule for an HTML character reference:
// hexadecimal &#x1F600;, decimal &#169;, or named &copy;.
// The reference is passed to the renderer undecoded.
func (p *parser) parseEntity(st *span, start int) (string, int, bool) {
	s := st.s
	i := start + 1
	if i < len(s) && s[i] == '#' {
		i++
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			i++
			j := i
			for j < len(s) && isHexDigit(s[j]) {
				j++
			}
			if j-i < 1 || j-i > 6 || j >= len(s) || s[j] != ';' {
				return "", 0, false
			}
			return p.r.HexEntity(s[i:j]), j + 1, true
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j-i < 1 || j-i > 7 || j >= len(s) || s[j] != ';' {
			return "", 0, false
		}
		return p.r.DecEntity(s[i:j]), j + 1, true
	}

	// Longest named entity is 31 bytes.
	if i >= len(s) || !isLetter(s[i]) {
		return "", 0, false
	}
	j := i + 1
	for j < len(s) && j-i < 32 && isLetterDigit(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != ';' {
		return "", 0, false
	}
	return p.r.TagEntity(s[i:j]), j + 1, true
}
