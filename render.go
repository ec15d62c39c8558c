// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// A Renderer turns recognized Markdown constructs into output text.
//
// The parser calls a Renderer method as soon as it recognizes a construct,
// passing the already-rendered output of the construct's children,
// and uses the returned string as the construct's rendering.
// Methods must be pure functions of their arguments and the Renderer's
// configuration: the parser may call a method for a construct that a later,
// higher-level alternative discards, so a method must not record state.
type Renderer interface {
	// Plain renders literal text.
	Plain(text string) string
	// Escaped renders a backslash-escaped punctuation character (without the backslash).
	Escaped(c string) string
	// Code renders the content of a code span.
	Code(text string) string
	// Space renders inter-word space, including a soft line break.
	Space() string
	// LineBreak renders a hard line break.
	LineBreak() string
	// Emph renders emphasized content.
	Emph(inner string) string
	// Strong renders strongly emphasized content.
	Strong(inner string) string
	// Link renders a link with the rendered label.
	Link(label, dest, title string) string
	// Image renders an image with the rendered label as its description.
	Image(label, src, title string) string
	// InlineHTML renders raw inline markup.
	InlineHTML(raw string) string
	// HexEntity renders a hexadecimal character reference given its digits.
	HexEntity(hex string) string
	// DecEntity renders a decimal character reference given its digits.
	DecEntity(dec string) string
	// TagEntity renders a named character reference given its name.
	TagEntity(name string) string

	// Paragraph renders a paragraph of inline content.
	Paragraph(inner string) string
	// Heading renders a heading of the given level (1 to 6) and title.
	// With Options.Containers, content is the rendering of the blocks
	// in the heading's section; otherwise it is empty.
	Heading(level int, title, content string) string
	// BlockQuote renders a block quote with the rendered blocks inside it.
	BlockQuote(body string) string
	// Verbatim renders an indented code block.
	// The text ends in a newline.
	Verbatim(text string) string
	// DisplayHTML renders a raw HTML block.
	DisplayHTML(raw string) string
	// BulletList renders a list of rendered items.
	// Items of a tight list contain unwrapped text rather than paragraphs.
	BulletList(items []string, tight bool) string
	// OrderedList is like BulletList, with items numbered from start.
	OrderedList(items []string, tight bool, start int) string
	// ListItem renders one item given its rendered blocks.
	ListItem(body string) string
	// ThematicBreak renders a thematic break.
	ThematicBreak() string

	// Interblock returns the separator placed between consecutive blocks.
	Interblock() string
	// Start returns text written before the document.
	Start() string
	// Stop returns text written after the document.
	Stop() string
	// Defaults returns the options the Renderer was configured with.
	Defaults() Options
}

// A format describes a registered output format.
type format struct {
	name     string
	aliases  []string
	defaults Options
	new      func(Options) Renderer
}

var formats = []format{
	{
		name:     "html",
		defaults: Options{BlankLines: true, StartNum: true},
		new:      func(o Options) Renderer { return NewHTMLRenderer(o) },
	},
	{
		name:     "latex",
		defaults: Options{StartNum: true},
		new:      func(o Options) Renderer { return NewLaTeXRenderer(o) },
	},
	{
		name:     "man",
		aliases:  []string{"groff"},
		defaults: Options{StartNum: true},
		new:      func(o Options) Renderer { return NewManRenderer(o) },
	},
	{
		name:     "markdown",
		aliases:  []string{"md"},
		defaults: Options{StartNum: true},
		new:      func(o Options) Renderer { return NewMarkdownRenderer(o) },
	},
}

// lookupFormat returns the format registered under name or one of its aliases.
func lookupFormat(name string) (format, bool) {
	name = strings.ToLower(name)
	for _, f := range formats {
		if f.name == name || slices.Contains(f.aliases, name) {
			return f, true
		}
	}
	return format{}, false
}

// NewRenderer returns a Renderer for the named output format
// (see [Formats]), configured with opts,
// or with the format's default options if opts is nil.
func NewRenderer(name string, opts *Options) (Renderer, error) {
	f, ok := lookupFormat(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (known formats: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	o := f.defaults
	if opts != nil {
		o = *opts
	}
	return f.new(o), nil
}

// DefaultOptions returns the default options for the named output format.
func DefaultOptions(name string) (Options, error) {
	f, ok := lookupFormat(name)
	if !ok {
		return Options{}, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	return f.defaults, nil
}

// Formats returns the names of the registered output formats, sorted.
// Aliases are not included.
func Formats() []string {
	var names []string
	for _, f := range formats {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return names
}
