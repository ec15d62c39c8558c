// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"fmt"
	"strings"
)

// A MarkdownRenderer renders Markdown as Markdown in a canonical style:
// ATX headings, * for emphasis, inline links, four-space indented code,
// and list items indented four spaces.
// Converting its output again produces the same output.
type MarkdownRenderer struct {
	opts Options
}

// NewMarkdownRenderer returns a Markdown renderer configured by opts.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{opts: opts}
}

func (r *MarkdownRenderer) Plain(text string) string   { return mdEscaper.Replace(text) }
func (r *MarkdownRenderer) Escaped(c string) string    { return `\` + c }
func (r *MarkdownRenderer) Space() string              { return " " }
func (r *MarkdownRenderer) LineBreak() string          { return "  \n" }
func (r *MarkdownRenderer) Emph(inner string) string   { return "*" + inner + "*" }
func (r *MarkdownRenderer) Strong(inner string) string { return "**" + inner + "**" }

// Code renders a code span delimited by one more backtick than
// the longest run inside it, padded with spaces when needed.
func (r *MarkdownRenderer) Code(text string) string {
	// Use the fewest backticks we can, and add spaces as needed.
	var b strings.Builder
	n := maxRun(text, '`') + 1
	writeTicks(&b, n)
	space := len(text) == 0 || text[0] == '`' || text[len(text)-1] == '`' ||
		len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' '
	if space {
		b.WriteByte(' ')
	}
	b.WriteString(text)
	if space {
		b.WriteByte(' ')
	}
	writeTicks(&b, n)
	return b.String()
}

// Link renders an inline link; reference links are always inlined.
func (r *MarkdownRenderer) Link(label, dest, title string) string {
	return "[" + label + "](" + mdDest(dest) + mdTitle(title) + ")"
}

func (r *MarkdownRenderer) Image(label, src, title string) string {
	return "![" + label + "](" + mdDest(src) + mdTitle(title) + ")"
}

// mdDest returns the Markdown form of a link destination.
func mdDest(dest string) string {
	if dest == "" || strings.ContainsAny(dest, " \t\n") {
		return "<" + mdLinkEscaper.Replace(dest) + ">"
	}
	return mdLinkEscaper.Replace(dest)
}

// mdTitle returns the Markdown form of a link title, with a leading space.
func mdTitle(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(title) + `"`
}

func (r *MarkdownRenderer) InlineHTML(raw string) string  { return raw }
func (r *MarkdownRenderer) DisplayHTML(raw string) string { return raw }
func (r *MarkdownRenderer) HexEntity(hex string) string   { return "&#x" + hex + ";" }
func (r *MarkdownRenderer) DecEntity(dec string) string   { return "&#" + dec + ";" }
func (r *MarkdownRenderer) TagEntity(name string) string  { return "&" + name + ";" }

func (r *MarkdownRenderer) Paragraph(inner string) string { return inner }

// Heading renders an ATX heading.
func (r *MarkdownRenderer) Heading(level int, title, content string) string {
	h := strings.Repeat("#", level) + " " + title
	if content != "" {
		h += r.Interblock() + content
	}
	return h
}

func (r *MarkdownRenderer) BlockQuote(body string) string {
	return strings.TrimSuffix(indentLines(body+"\n", "> "), "\n")
}

func (r *MarkdownRenderer) Verbatim(text string) string {
	return strings.TrimSuffix(indentLines(text, "    "), "\n")
}

// BulletList renders items marked with "-" and indented four spaces.
// Loose items are separated by blank lines.
func (r *MarkdownRenderer) BulletList(items []string, tight bool) string {
	var list []string
	for _, item := range items {
		list = append(list, mdItem("-   ", item, tight))
	}
	return mdJoinItems(list, tight)
}

func (r *MarkdownRenderer) OrderedList(items []string, tight bool, start int) string {
	var list []string
	for i, item := range items {
		list = append(list, mdItem(fmt.Sprintf("%-3s ", fmt.Sprintf("%d.", start+i)), item, tight))
	}
	return mdJoinItems(list, tight)
}

// mdItem returns a list item with its marker and its continuation lines
// indented to line up under the item text.
// The blocks of a tight item are kept on adjacent lines.
func mdItem(marker, body string, tight bool) string {
	if tight {
		body = strings.ReplaceAll(body, "\n\n", "\n")
	}
	return strings.TrimSuffix(prefixLines(body+"\n", marker, "    "), "\n")
}

func mdJoinItems(list []string, tight bool) string {
	if tight {
		return strings.Join(list, "\n")
	}
	return strings.Join(list, "\n\n")
}

func (r *MarkdownRenderer) ListItem(body string) string { return body }
func (r *MarkdownRenderer) ThematicBreak() string       { return "* * *" }
func (r *MarkdownRenderer) Interblock() string          { return "\n\n" }
func (r *MarkdownRenderer) Start() string               { return "" }
func (r *MarkdownRenderer) Stop() string                { return "\n" }
func (r *MarkdownRenderer) Defaults() Options           { return r.opts }
