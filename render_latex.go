// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"fmt"
	"strings"
)

// A LaTeXRenderer renders Markdown as a LaTeX document body.
// Raw HTML has no LaTeX equivalent and is dropped.
type LaTeXRenderer struct {
	opts Options
}

// NewLaTeXRenderer returns a LaTeX renderer configured by opts.
func NewLaTeXRenderer(opts Options) *LaTeXRenderer {
	return &LaTeXRenderer{opts: opts}
}

// latexEscaper escapes the characters LaTeX treats specially in running text.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
	`_`, `\_`,
	`^`, `\^{}`,
	`~`, `\ensuremath{\sim}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
	`|`, `\textbar{}`,
)

// latexURLEscaper escapes the characters that break a URL argument to \href.
var latexURLEscaper = strings.NewReplacer(
	`\`, `\\`,
	`#`, `\#`,
	`%`, `\%`,
	`{`, `\{`,
	`}`, `\}`,
)

// Plain escapes the characters LaTeX treats specially.
func (r *LaTeXRenderer) Plain(text string) string   { return latexEscaper.Replace(text) }
func (r *LaTeXRenderer) Escaped(c string) string    { return latexEscaper.Replace(c) }
func (r *LaTeXRenderer) Space() string              { return " " }
func (r *LaTeXRenderer) LineBreak() string          { return "\\\\\n" }
func (r *LaTeXRenderer) Emph(inner string) string   { return `\emph{` + inner + `}` }
func (r *LaTeXRenderer) Strong(inner string) string { return `\textbf{` + inner + `}` }

func (r *LaTeXRenderer) Code(text string) string {
	return `\texttt{` + latexEscaper.Replace(text) + `}`
}

// Link renders an \href. LaTeX has no place for the title.
func (r *LaTeXRenderer) Link(label, dest, title string) string {
	return `\href{` + latexURLEscaper.Replace(dest) + `}{` + label + `}`
}

// Image renders an \includegraphics of src; the label is dropped.
func (r *LaTeXRenderer) Image(label, src, title string) string {
	return `\includegraphics{` + latexURLEscaper.Replace(src) + `}`
}

func (r *LaTeXRenderer) InlineHTML(raw string) string  { return "" }
func (r *LaTeXRenderer) DisplayHTML(raw string) string { return "" }

// Character references are decoded to the characters they name.
// An unknown name is kept as literal text.
func (r *LaTeXRenderer) HexEntity(hex string) string {
	return latexEscaper.Replace(entityText("&#x" + hex + ";"))
}

func (r *LaTeXRenderer) DecEntity(dec string) string {
	return latexEscaper.Replace(entityText("&#" + dec + ";"))
}

func (r *LaTeXRenderer) TagEntity(name string) string {
	return latexEscaper.Replace(entityText("&" + name + ";"))
}

func (r *LaTeXRenderer) Paragraph(inner string) string { return inner }

var latexSections = []string{
	1: "section",
	2: "subsection",
	3: "subsubsection",
	4: "paragraph",
	5: "subparagraph",
	6: "subparagraph",
}

// Heading renders a sectioning command: \section for level 1
// down to \subparagraph for levels 5 and 6.
func (r *LaTeXRenderer) Heading(level int, title, content string) string {
	h := fmt.Sprintf(`\%s{%s}`, latexSections[min(max(level, 1), 6)], title)
	if content != "" {
		h += r.Interblock() + content
	}
	return h
}

func (r *LaTeXRenderer) BlockQuote(body string) string {
	return "\\begin{quote}\n" + body + "\n\\end{quote}"
}

func (r *LaTeXRenderer) Verbatim(text string) string {
	return "\\begin{verbatim}\n" + text + "\\end{verbatim}"
}

func (r *LaTeXRenderer) BulletList(items []string, tight bool) string {
	return "\\begin{itemize}\n" + r.items(items, tight) + "\n\\end{itemize}"
}

// OrderedList renders an enumerate environment,
// setting the counter when the list does not start at 1.
func (r *LaTeXRenderer) OrderedList(items []string, tight bool, start int) string {
	open := "\\begin{enumerate}\n"
	if start != 1 {
		open += fmt.Sprintf("\\setcounter{enumi}{%d}\n", start-1)
	}
	return open + r.items(items, tight) + "\n\\end{enumerate}"
}

func (r *LaTeXRenderer) items(items []string, tight bool) string {
	if tight {
		return "\\itemsep=0pt\n" + strings.Join(items, "\n")
	}
	return strings.Join(items, "\n\n")
}

func (r *LaTeXRenderer) ListItem(body string) string { return `\item ` + body }

func (r *LaTeXRenderer) ThematicBreak() string {
	return `\begin{center}\rule{3in}{0.4pt}\end{center}`
}

// Interblock is always a blank line, which LaTeX needs to end a paragraph.
func (r *LaTeXRenderer) Interblock() string { return "\n\n" }
func (r *LaTeXRenderer) Start() string      { return "" }
func (r *LaTeXRenderer) Stop() string       { return "\n" }
func (r *LaTeXRenderer) Defaults() Options  { return r.opts }
