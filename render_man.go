// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strconv"
	"strings"
)

// A ManRenderer renders Markdown as groff man page source,
// without the .TH header line.
// Raw HTML has no man equivalent and is dropped.
type ManRenderer struct {
	opts Options
}

// NewManRenderer returns a man page renderer configured by opts.
func NewManRenderer(opts Options) *ManRenderer {
	return &ManRenderer{opts: opts}
}

// manEscape escapes text for groff.
// A backslash becomes \e, and text starting with . or ',
// which groff would read as a request at the start of a line, gets a \& guard.
func manEscape(text string) string {
	text = strings.ReplaceAll(text, `\`, `\e`)
	if text != "" && (text[0] == '.' || text[0] == '\'') {
		text = `\&` + text
	}
	return text
}

// Plain escapes text for groff; see manEscape.
func (r *ManRenderer) Plain(text string) string   { return manEscape(text) }
func (r *ManRenderer) Escaped(c string) string    { return manEscape(c) }
func (r *ManRenderer) Space() string              { return " " }
func (r *ManRenderer) LineBreak() string          { return "\n.br\n" }
func (r *ManRenderer) Emph(inner string) string   { return `\f[I]` + inner + `\f[R]` }
func (r *ManRenderer) Strong(inner string) string { return `\f[B]` + inner + `\f[R]` }
func (r *ManRenderer) Code(text string) string    { return `\f[C]` + manEscape(text) + `\f[R]` }

// Link renders the label followed by the destination in parentheses,
// or just the label when it already shows the destination.
func (r *ManRenderer) Link(label, dest, title string) string {
	d := manEscape(strings.TrimPrefix(dest, "mailto:"))
	if label == d {
		return label
	}
	return label + " (" + d + ")"
}

// Image renders a bracketed placeholder holding the label.
func (r *ManRenderer) Image(label, src, title string) string {
	return "[IMAGE: " + label + "]"
}

func (r *ManRenderer) InlineHTML(raw string) string  { return "" }
func (r *ManRenderer) DisplayHTML(raw string) string { return "" }

func (r *ManRenderer) HexEntity(hex string) string {
	return manEscape(entityText("&#x" + hex + ";"))
}

func (r *ManRenderer) DecEntity(dec string) string {
	return manEscape(entityText("&#" + dec + ";"))
}

func (r *ManRenderer) TagEntity(name string) string {
	return manEscape(entityText("&" + name + ";"))
}

func (r *ManRenderer) Paragraph(inner string) string { return ".PP\n" + inner }

// Heading renders .SH for level 1, .SS for level 2,
// and a bold paragraph for deeper levels.
func (r *ManRenderer) Heading(level int, title, content string) string {
	var h string
	switch level {
	case 1:
		h = ".SH " + title
	case 2:
		h = ".SS " + title
	default:
		h = ".PP\n\\f[B]" + title + "\\f[R]"
	}
	if content != "" {
		h += r.Interblock() + content
	}
	return h
}

func (r *ManRenderer) BlockQuote(body string) string {
	return ".RS\n" + body + "\n.RE"
}

// Verbatim renders an indented no-fill block in a constant-width font.
func (r *ManRenderer) Verbatim(text string) string {
	var b strings.Builder
	b.WriteString(".IP\n.nf\n\\f[C]\n")
	for _, line := range strings.SplitAfter(text, "\n") {
		b.WriteString(manEscape(line))
	}
	b.WriteString("\\f[R]\n.fi")
	return b.String()
}

func (r *ManRenderer) BulletList(items []string, tight bool) string {
	var list []string
	for _, item := range items {
		list = append(list, ".IP \\[bu] 2\n"+manItem(item))
	}
	return strings.Join(list, "\n")
}

func (r *ManRenderer) OrderedList(items []string, tight bool, start int) string {
	var list []string
	for i, item := range items {
		list = append(list, ".IP \""+strconv.Itoa(start+i)+".\" 4\n"+manItem(item))
	}
	return strings.Join(list, "\n")
}

// manItem adjusts the body of a list item to follow an .IP request:
// paragraphs inside the item continue at the item's indentation.
func manItem(body string) string {
	body = strings.TrimPrefix(body, ".PP\n")
	return strings.ReplaceAll(body, "\n.PP\n", "\n.IP\n")
}

func (r *ManRenderer) ListItem(body string) string { return body }

func (r *ManRenderer) ThematicBreak() string {
	return ".PP\n\\ \\ *\\ \\ *\\ \\ *\\ \\ *\\ \\ *"
}

// Interblock is a newline: every block begins with its own request.
func (r *ManRenderer) Interblock() string { return "\n" }
func (r *ManRenderer) Start() string      { return "" }
func (r *ManRenderer) Stop() string       { return "\n" }
func (r *ManRenderer) Defaults() Options  { return r.opts }
