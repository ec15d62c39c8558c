// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every renderer is a Renderer.
var (
	_ Renderer = (*HTMLRenderer)(nil)
	_ Renderer = (*LaTeXRenderer)(nil)
	_ Renderer = (*ManRenderer)(nil)
	_ Renderer = (*MarkdownRenderer)(nil)
)

func TestHTMLRenderer(t *testing.T) {
	r := NewHTMLRenderer(Options{BlankLines: true})
	assert.Equal(t, "a &lt;b&gt; &amp; &quot;c&quot;", r.Plain(`a <b> & "c"`))
	assert.Equal(t, `<a href="/a%20b%22c?x=1&amp;y=2" title="&quot;T&quot;">L</a>`,
		r.Link("L", `/a b"c?x=1&y=2`, `"T"`))
	assert.Equal(t, `<img src="i.png" alt="a b" />`, r.Image("a <em>b</em>", "i.png", ""))
	assert.Equal(t, `<ol start="0">`+"\n<li>x</li>\n</ol>", r.OrderedList([]string{"<li>x</li>"}, true, 0))
	assert.Equal(t, "<h2>T</h2>\n\n<p>x</p>", r.Heading(2, "T", "<p>x</p>"))
	assert.Equal(t, "\n\n", r.Interblock())
	assert.Equal(t, "\n", r.Stop())

	r = NewHTMLRenderer(Options{Minimize: true, Containers: true})
	assert.Equal(t, "<section><h1>T</h1><p>x</p></section>", r.Heading(1, "T", "<p>x</p>"))
	assert.Equal(t, "<blockquote><p>q</p></blockquote>", r.BlockQuote("<p>q</p>"))
	assert.Equal(t, "<br />", r.LineBreak())
	assert.Equal(t, "", r.Interblock())
	assert.Equal(t, "", r.Stop())

	r = NewHTMLRenderer(Options{})
	assert.Equal(t, "\n", r.Interblock())
}

func TestStripTags(t *testing.T) {
	for in, want := range map[string]string{
		"plain":               "plain",
		"a <em>b</em> c":      "a b c",
		"<code>x &lt;</code>": "x &lt;",
		"broken <tag":         "broken ",
	} {
		assert.Equal(t, want, stripTags(in), "stripTags(%q)", in)
	}
}

func TestLaTeXRenderer(t *testing.T) {
	r := NewLaTeXRenderer(Options{})
	assert.Equal(t, `50\% \& \$5 a\_b \{x\} \#1 \textbackslash{}`, r.Plain(`50% & $5 a_b {x} #1 \`))
	assert.Equal(t, `\href{http://x/\%20\#y}{label}`, r.Link("label", "http://x/%20#y", "ignored"))
	assert.Equal(t, `\subparagraph{Deep}`, r.Heading(6, "Deep", ""))
	assert.Equal(t, "\\begin{enumerate}\n\\itemsep=0pt\n\\item a\n\\item b\n\\end{enumerate}",
		r.OrderedList([]string{r.ListItem("a"), r.ListItem("b")}, true, 1))
	assert.Equal(t, "é", r.TagEntity("eacute"))
	assert.Equal(t, `\&nosuch;`, r.TagEntity("nosuch"))
	assert.Equal(t, "", r.InlineHTML("<b>"))
}

func TestManRenderer(t *testing.T) {
	r := NewManRenderer(Options{})
	assert.Equal(t, `\&.TH`, r.Plain(".TH"))
	assert.Equal(t, `\&'quote`, r.Plain("'quote"))
	assert.Equal(t, `a\eb`, r.Plain(`a\b`))
	assert.Equal(t, "me@x.org", r.Link("me@x.org", "mailto:me@x.org", ""))
	assert.Equal(t, "docs (/d)", r.Link("docs", "/d", ""))
	assert.Equal(t, "[IMAGE: logo]", r.Image("logo", "/l.png", ""))
	assert.Equal(t, ".PP\n\\f[B]Three\\f[R]", r.Heading(3, "Three", ""))
	assert.Equal(t, ".IP \"9.\" 4\na\n.IP\nb\n.IP \"10.\" 4\nc",
		r.OrderedList([]string{".PP\na\n.PP\nb", ".PP\nc"}, false, 9))
	assert.Equal(t, ".IP\n.nf\n\\f[C]\n\\&.x\ny\n\\f[R]\n.fi", r.Verbatim(".x\ny\n"))
	assert.Equal(t, "©", r.HexEntity("a9"))
	assert.Equal(t, "©", r.DecEntity("169"))
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(Options{})
	for text, want := range map[string]string{
		"x":      "`x`",
		"a`b":    "``a`b``",
		"`a":     "`` `a ``",
		"a``":    "``` a`` ```",
		" a ":    "`  a  `",
		"":       "`  `",
		"a  b  ": "`a  b  `",
	} {
		assert.Equal(t, want, r.Code(text), "Code(%q)", text)
	}
	assert.Equal(t, `[l](<a b>)`, r.Link("l", "a b", ""))
	assert.Equal(t, `[l](<>)`, r.Link("l", "", ""))
	assert.Equal(t, `[l](a\(b\) "say \"hi\"")`, r.Link("l", "a(b)", `say "hi"`))
	assert.Equal(t, `\*a\_b\[c\]`, r.Plain("*a_b[c]"))
	assert.Equal(t, "### T", r.Heading(3, "T", ""))
	assert.Equal(t, "> a\n>\n> b", r.BlockQuote("a\n\nb"))
	assert.Equal(t, "    x\n\n    y", r.Verbatim("x\n\ny\n"))
	assert.Equal(t, "9.  a\n10. b", r.OrderedList([]string{"a", "b"}, true, 9))
	assert.Equal(t, "-   a\n\n    b\n\n-   c", r.BulletList([]string{"a\n\nb", "c"}, false))
	assert.Equal(t, "-   a\n    b", r.BulletList([]string{"a\n\nb"}, true))
}

func TestPrefixLines(t *testing.T) {
	assert.Equal(t, "- a\n  b\n\n  c\n", prefixLines("a\nb\n\nc\n", "- ", "  "))
	assert.Equal(t, "> a\n>\n", indentLines("a\n\n", "> "))
	assert.Equal(t, "", indentLines("", "> "))
}
