// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"

	"golang.org/x/text/cases"
)

// A Reference is a [link reference definition]:
// a label, a destination, and an optional title.
//
// [link reference definition]: https://spec.commonmark.org/0.31.2/#link-reference-definitions
type Reference struct {
	Label string // label as written, without brackets
	Dest  string // destination with escapes and entities decoded
	Title string // title with escapes and entities decoded
}

// A RefTable maps normalized link labels to their definitions.
// Each conversion builds its own table;
// a RefTable must not be shared between concurrent conversions.
type RefTable struct {
	refs map[string]Reference
}

// NewRefTable returns an empty reference table.
func NewRefTable() *RefTable {
	return &RefTable{refs: make(map[string]Reference)}
}

// Define records ref under its normalized label.
// A later definition of the same label replaces an earlier one.
func (t *RefTable) Define(ref Reference) {
	t.refs[normalizeLabel(ref.Label)] = ref
}

// Lookup returns the definition for label, if any.
// Labels match case-insensitively and with runs of whitespace collapsed.
func (t *RefTable) Lookup(label string) (Reference, bool) {
	ref, ok := t.refs[normalizeLabel(label)]
	return ref, ok
}

// Len returns the number of distinct labels defined.
func (t *RefTable) Len() int {
	return len(t.refs)
}

// Prescan records in t every reference definition in the normalized text s.
//
// The scan walks s in runs of lines the same way the block grammar does:
// at the start of each run it tries a definition,
// and otherwise it skips the entire run of non-blank lines.
// A definition therefore only counts when it begins a block,
// and the table matches what the block grammar later discards as definitions.
func (t *RefTable) Prescan(s string) {
	for i := 0; i < len(s); {
		if ref, end, ok := parseRefDef(s, i); ok {
			t.Define(ref)
			i = end
			continue
		}
		if isBlank(s, i) {
			i = blankLines(s, i)
			continue
		}
		for i < len(s) && !isBlank(s, i) {
			i = lineEnd(s, i)
		}
	}
}

// parseReference is a block rule for a reference definition.
// Definitions were already recorded by Prescan, so it renders nothing.
func (p *parser) parseReference(s string, start int) (string, int, bool) {
	_, end, ok := parseRefDef(s, start)
	return "", end, ok
}

// parseRefDef parses a link reference definition at the start of the line s[start:],
// along with any blank lines that follow it.
func parseRefDef(s string, start int) (ref Reference, end int, ok bool) {
	// [label]: dest "title"
	// The destination may be on the line after the colon,
	// and the title may be on the line after the destination.
	i, ok := nonIndentSpace(s, start)
	if !ok {
		return Reference{}, 0, false
	}
	label, i, ok := parseLinkLabel(s, i)
	if !ok || trimSpaceTabNewline(label) == "" || i >= len(s) || s[i] != ':' {
		return Reference{}, 0, false
	}
	i = spnl(s, i+1)
	if i >= len(s) || s[i] == '\n' {
		return Reference{}, 0, false
	}
	dest, i, ok := parseLinkDest(s, i)
	if !ok {
		return Reference{}, 0, false
	}

	// Take title if present and doesn't break parse.
	var title string
	if j := spnl(s, i); j > i {
		if t, _, k, ok := parseLinkTitle(s, j); ok {
			k = skipSpaceTab(s, k)
			if k >= len(s) || s[k] == '\n' {
				title = t
				i = k
			}
		}
	}

	// Must end line.
	i = skipSpaceTab(s, i)
	if i < len(s) && s[i] != '\n' {
		return Reference{}, 0, false
	}
	if i < len(s) {
		i++
	}
	return Reference{Label: label, Dest: dest, Title: title}, blankLines(s, i), true
}

// parseLinkTitle parses a [link title] at s[i:], returning
// the terminating character, one of " ' or );
// the index just past the end of the link;
// and whether a link was found at all.
//
// [link title]: https://spec.commonmark.org/0.31.2/#link-title
func parseLinkTitle(s string, i int) (title string, char byte, end int, found bool) {
	if i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == '(') {
		want := s[i]
		if want == '(' {
			want = ')'
		}
		j := i + 1
		for ; j < len(s); j++ {
			if s[j] == want {
				return mdUnescape(s[i+1 : j]), want, j + 1, true
			}
			if s[j] == '(' && want == ')' {
				break
			}
			if s[j] == '\n' && isBlank(s, j+1) {
				break
			}
			if s[j] == '\\' && j+1 < len(s) {
				j++
			}
		}
	}
	return "", 0, 0, false
}

// parseLinkLabel parses a bracketed link label at s[i:], returning
// the text between the brackets, the end index just past the label,
// and whether a label was found at all.
//
// Brackets nest: the label ends at the matching right bracket.
// Backslash-escaped brackets and brackets inside code spans do not count,
// and a label cannot extend across a blank line.
// The label may be empty.
func parseLinkLabel(s string, i int) (string, int, bool) {
	if i >= len(s) || s[i] != '[' {
		return "", 0, false
	}
	depth := 0
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if j+1 < len(s) && isPunct(s[j+1]) {
				j++
			}
		case '`':
			_, end, _ := scanCodeSpan(s, j)
			j = end - 1
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return s[i+1 : j], j + 1, true
			}
			depth--
		case '\n':
			if j+1 >= len(s) || isBlank(s, j+1) {
				return "", 0, false
			}
		}
	}
	return "", 0, false
}

// normalizeLabel returns the normalized label for s, for uniquely identifying that label.
func normalizeLabel(s string) string {
	// Strip leading and trailing spaces, tabs, and line endings,
	// collapse consecutive internal whitespace to a single space,
	// and perform the Unicode case fold.
	s = trimSpaceTabNewline(s)
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		// Table at https://www.unicode.org/Public/12.1.0/ucd/CaseFolding.txt.
		s = cases.Fold().String(s)
	}
	return s
}

// parseLinkDest parses a [link destination] at s[i:], returning
// the destination, the end index just past the destination,
// and whether a destination was found.
//
// [link destination]: https://spec.commonmark.org/0.31.2/#link-destination
func parseLinkDest(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}

	// A sequence of zero or more characters between an opening < and a closing >
	// that contains no line endings or unescaped < or > characters,
	if s[i] == '<' {
		for j := i + 1; ; j++ {
			if j >= len(s) || s[j] == '\n' || s[j] == '<' {
				return "", 0, false
			}
			if s[j] == '>' {
				return mdUnescape(s[i+1 : j]), j + 1, true
			}
			if s[j] == '\\' {
				j++
			}
		}
	}

	// or a nonempty sequence of characters that does not include
	// ASCII control characters or space character,
	// and includes parentheses only if (a) they are backslash-escaped
	// or (b) they are part of a balanced pair of unescaped parentheses.
	depth := 0
	j := i
Loop:
	for ; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
			if depth > 32 {
				// Avoid quadratic inputs by stopping if too deep.
				// This is the same depth that cmark-gfm uses.
				return "", 0, false
			}
		case ')':
			if depth == 0 {
				break Loop
			}
			depth--
		case '\\':
			if j+1 < len(s) {
				if s[j+1] == ' ' || s[j+1] == '\t' {
					return "", 0, false
				}
				j++
			}
		case ' ', '\t', '\n':
			break Loop
		}
	}
	if j == i || depth != 0 {
		return "", 0, false
	}
	return mdUnescape(s[i:j]), j, true
}

// parseLinkTail parses the parenthesized destination and optional title
// that follow the label of a direct link: (dest "title").
func parseLinkTail(s string, i int) (dest, title string, end int, ok bool) {
	if i >= len(s) || s[i] != '(' {
		return "", "", 0, false
	}
	j := spnl(s, i+1)
	if j < len(s) && s[j] != ')' {
		dest, j, ok = parseLinkDest(s, j)
		if !ok {
			return "", "", 0, false
		}
		if k := spnl(s, j); k > j && k < len(s) && s[k] != ')' {
			t, _, e, ok := parseLinkTitle(s, k)
			if !ok {
				return "", "", 0, false
			}
			title = t
			j = e
		}
		j = spnl(s, j)
	}
	if j >= len(s) || s[j] != ')' {
		return "", "", 0, false
	}
	return dest, title, j + 1, true
}

// parseLink is an inline rule for links.
// The caller has checked that st.s[start] == '['.
//
// A direct link [label](dest "title") renders as a link.
// A reference link [label][ref], [label][], or [label] renders as a link
// when its reference is defined, and otherwise as literal text,
// with the label still rendered as inline content.
func (p *parser) parseLink(st *span, start int) (string, int, bool) {
	if p.depth >= maxNesting {
		return "", 0, false
	}
	s := st.s
	label, j, ok := parseLinkLabel(s, start)
	if !ok {
		return "", 0, false
	}
	if dest, title, end, ok := parseLinkTail(s, j); ok {
		return p.r.Link(p.nestedInlines(label), dest, title), end, true
	}

	ref, end, key := refTag(s, label, j)
	if def, ok := p.refs.Lookup(key); ok && trimSpaceTabNewline(key) != "" {
		return p.r.Link(p.nestedInlines(label), def.Dest, def.Title), end, true
	}

	// Unresolved: the brackets are literal text.
	out := p.r.Plain("[") + p.nestedInlines(label) + p.r.Plain("]")
	if end > j {
		if k := strings.IndexByte(s[j:end], '['); k > 0 {
			out += p.r.Space()
		}
		out += p.r.Plain("[") + p.nestedInlines(ref) + p.r.Plain("]")
	}
	return out, end, true
}

// parseImage is an inline rule for images, which are links preceded by !.
// The caller has checked that st.s[start] == '!'.
// Unlike parseLink, parseImage fails when the reference is undefined.
func (p *parser) parseImage(st *span, start int) (string, int, bool) {
	if p.depth >= maxNesting {
		return "", 0, false
	}
	s := st.s
	label, j, ok := parseLinkLabel(s, start+1)
	if !ok {
		return "", 0, false
	}
	if dest, title, end, ok := parseLinkTail(s, j); ok {
		return p.r.Image(p.nestedInlines(label), dest, title), end, true
	}
	_, end, key := refTag(s, label, j)
	if def, ok := p.refs.Lookup(key); ok && trimSpaceTabNewline(key) != "" {
		return p.r.Image(p.nestedInlines(label), def.Dest, def.Title), end, true
	}
	return "", 0, false
}

// refTag parses the optional second label of a reference link,
// which follows the first label s[..i] after optional spaces and at most one newline.
// It returns that second label, the end of the link,
// and the key to look up: the second label if it is nonempty
// and the first label otherwise.
func refTag(s, label string, i int) (ref string, end int, key string) {
	k := spnl(s, i)
	ref, e, ok := parseLinkLabel(s, k)
	if !ok {
		return "", i, label
	}
	if trimSpaceTabNewline(ref) == "" {
		return ref, e, label
	}
	return ref, e, ref
}

// parseAutoLinkURI parses a URI autolink <scheme:...> at s[i:],
// returning the URI.
// The caller has checked that s[i] == '<'.
func parseAutoLinkURI(s string, i int) (uri string, end int, ok bool) {
	// A scheme is any sequence of 2–32 characters
	// beginning with an ASCII letter and followed by any combination of
	// ASCII letters, digits, or the symbols plus (”+”), period (”.”), or
	// hyphen (”-”).
	//
	// An absolute URI, for these purposes, consists of a scheme followed by
	// a colon (:) followed by zero or more characters other ASCII control
	// characters, space, <, and >.
	j := i
	if j+1 >= len(s) || s[j] != '<' || !isLetter(s[j+1]) {
		return
	}
	j++
	for j < len(s) && isScheme(s[j]) && j-(i+1) <= 32 {
		j++
	}
	if j-(i+1) < 2 || j-(i+1) > 32 || j >= len(s) || s[j] != ':' {
		return
	}
	j++
	for j < len(s) && isURL(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return
	}
	return s[i+1 : j], j + 1, true
}

// parseAutoLinkEmail parses an email autolink <user@domain> at s[i:],
// returning the address.
// The caller has checked that s[i] == '<'.
func parseAutoLinkEmail(s string, i int) (email string, end int, ok bool) {
	// An email address, for these purposes, is anything that matches
	// the non-normative regex from the HTML5 spec:
	//
	//	/^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$/
	j := i
	if j+1 >= len(s) || s[j] != '<' || !isUser(s[j+1]) {
		return
	}
	j++
	for j < len(s) && isUser(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '@' {
		return
	}
	for {
		j++
		n, ok1 := skipDomainElem(s[j:])
		if !ok1 {
			return
		}
		j += n
		if j >= len(s) || s[j] != '.' && s[j] != '>' {
			return
		}
		if s[j] == '>' {
			break
		}
	}
	return s[i+1 : j], j + 1, true
}

// parseAutoLink is an inline rule for autolinks.
// The caller has checked that st.s[start] == '<'.
func (p *parser) parseAutoLink(st *span, start int) (string, int, bool) {
	if uri, end, ok := parseAutoLinkURI(st.s, start); ok {
		return p.r.Link(p.r.Plain(uri), uri, ""), end, true
	}
	if email, end, ok := parseAutoLinkEmail(st.s, start); ok {
		return p.r.Link(p.r.Plain(email), "mailto:"+email, ""), end, true
	}
	return "", 0, false
}

// skipDomainElem reports the length of a leading domain element in s,
// along with whether there is one.
func skipDomainElem(s string) (int, bool) {
	// String of LDH, up to 63 in length, with LetterDigit
	// at both ends (1-letter/digit names are OK).
	// Aka /[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?/.
	if len(s) < 1 || !isLetterDigit(s[0]) {
		return 0, false
	}
	i := 1
	for i < len(s) && isLDH(s[i]) && i <= 63 {
		i++
	}
	if i > 63 || !isLetterDigit(s[i-1]) {
		return 0, false
	}
	return i, true
}

// isUser reports whether c is an email user byte.
func isUser(c byte) bool {
	// A-Za-z0-9 plus ".!#$%&'*+/=?^_`{|}~-"
	return c == '!' ||
		'#' <= c && c <= '\'' ||
		'*' <= c && c <= '+' ||
		'-' <= c && c <= '9' ||
		c == '=' ||
		c == '?' ||
		'A' <= c && c <= 'Z' ||
		'^' <= c && c <= '`' ||
		'a' <= c && c <= 'z' ||
		'{' <= c && c <= '~'
}

// isScheme reports whether c is a scheme character.
func isScheme(c byte) bool {
	return isLetterDigit(c) || c == '+' || c == '.' || c == '-'
}

// isURL reports whether c is a URL character.
func isURL(c byte) bool {
	return c > ' ' && c != '<' && c != '>'
}
