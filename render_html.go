// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"fmt"
	"strings"
)

// An HTMLRenderer renders Markdown as an HTML fragment.
type HTMLRenderer struct {
	opts Options
}

// NewHTMLRenderer returns an HTML renderer configured by opts.
// Containers wraps each heading's section in a <section> element,
// Minimize drops the newlines between elements,
// and BlankLines separates blocks with a blank line.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{opts: opts}
}

// nl returns the newline written between an element's tags and its children.
func (r *HTMLRenderer) nl() string {
	if r.opts.Minimize {
		return ""
	}
	return "\n"
}

// Plain escapes text for HTML content.
func (r *HTMLRenderer) Plain(text string) string { return htmlEscaper.Replace(text) }
func (r *HTMLRenderer) Escaped(c string) string  { return htmlEscaper.Replace(c) }
func (r *HTMLRenderer) Space() string            { return " " }
func (r *HTMLRenderer) LineBreak() string        { return "<br />" + r.nl() }
func (r *HTMLRenderer) Emph(inner string) string { return "<em>" + inner + "</em>" }

func (r *HTMLRenderer) Code(text string) string {
	return "<code>" + htmlEscaper.Replace(text) + "</code>"
}

func (r *HTMLRenderer) Strong(inner string) string {
	return "<strong>" + inner + "</strong>"
}

// Link renders an <a> element. The destination is percent-encoded
// where it holds characters that cannot appear in a URL;
// an empty title is omitted.
func (r *HTMLRenderer) Link(label, dest, title string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(htmlLinkEscaper.Replace(dest))
	b.WriteString(`"`)
	if title != "" {
		b.WriteString(` title="`)
		b.WriteString(htmlEscaper.Replace(title))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(label)
	b.WriteString(`</a>`)
	return b.String()
}

// Image renders an <img> element whose alt text is the label
// with its markup removed.
func (r *HTMLRenderer) Image(label, src, title string) string {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(htmlLinkEscaper.Replace(src))
	b.WriteString(`" alt="`)
	b.WriteString(stripTags(label))
	b.WriteString(`"`)
	if title != "" {
		b.WriteString(` title="`)
		b.WriteString(htmlEscaper.Replace(title))
		b.WriteString(`"`)
	}
	b.WriteString(` />`)
	return b.String()
}

// stripTags removes the markup from rendered HTML, leaving its (escaped) text.
func stripTags(s string) string {
	if strings.IndexByte(s, '<') < 0 {
		return s
	}
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		j := strings.IndexByte(s[i:], '>')
		if j < 0 {
			break
		}
		s = s[i+j+1:]
	}
	return b.String()
}

// Raw markup and character references pass through unchanged.
func (r *HTMLRenderer) InlineHTML(raw string) string  { return raw }
func (r *HTMLRenderer) DisplayHTML(raw string) string { return raw }
func (r *HTMLRenderer) HexEntity(hex string) string   { return "&#x" + hex + ";" }
func (r *HTMLRenderer) DecEntity(dec string) string   { return "&#" + dec + ";" }
func (r *HTMLRenderer) TagEntity(name string) string  { return "&" + name + ";" }

func (r *HTMLRenderer) Paragraph(inner string) string {
	return "<p>" + inner + "</p>"
}

// Heading renders an <h1> to <h6> element.
// With Options.Containers, the heading and its section content
// are wrapped in a <section> element.
func (r *HTMLRenderer) Heading(level int, title, content string) string {
	h := fmt.Sprintf("<h%d>%s</h%d>", level, title, level)
	if content != "" {
		h += r.Interblock() + content
	}
	if !r.opts.Containers {
		return h
	}
	return "<section>" + r.nl() + h + r.nl() + "</section>"
}

func (r *HTMLRenderer) BlockQuote(body string) string {
	return "<blockquote>" + r.nl() + body + r.nl() + "</blockquote>"
}

func (r *HTMLRenderer) Verbatim(text string) string {
	return "<pre><code>" + htmlEscaper.Replace(text) + "</code></pre>"
}

func (r *HTMLRenderer) BulletList(items []string, tight bool) string {
	return "<ul>" + r.nl() + strings.Join(items, r.nl()) + r.nl() + "</ul>"
}

// OrderedList renders an <ol> element, with a start attribute
// unless the list starts at 1.
func (r *HTMLRenderer) OrderedList(items []string, tight bool, start int) string {
	open := "<ol>"
	if start != 1 {
		open = fmt.Sprintf(`<ol start="%d">`, start)
	}
	return open + r.nl() + strings.Join(items, r.nl()) + r.nl() + "</ol>"
}

func (r *HTMLRenderer) ListItem(body string) string {
	return "<li>" + body + "</li>"
}

func (r *HTMLRenderer) ThematicBreak() string { return "<hr />" }

// Interblock is a blank line with Options.BlankLines and a newline otherwise.
// Options.Minimize drops it entirely.
func (r *HTMLRenderer) Interblock() string {
	switch {
	case r.opts.Minimize:
		return ""
	case r.opts.BlankLines:
		return "\n\n"
	}
	return "\n"
}

func (r *HTMLRenderer) Start() string     { return "" }
func (r *HTMLRenderer) Stop() string      { return r.nl() }
func (r *HTMLRenderer) Defaults() Options { return r.opts }
