// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pegmark converts Markdown directly into other formats
// (HTML, LaTeX, groff man pages, or Markdown itself).
//
// There is no syntax tree. The parser is an ordered-choice recognizer:
// at each position it tries the alternatives for a block or inline
// construct in a fixed priority order, and the first one that matches
// wins. Each successful match immediately calls the corresponding
// [Renderer] method with the already-rendered fragments of its children,
// so the result of parsing a construct is its output.
//
// Conversion runs in three steps. [Normalize] expands tabs and appends a
// trailing blank line. A prescan records every link reference definition
// in a [RefTable], so that links may refer to definitions that appear
// later in the document. Finally the block grammar parses the normalized
// text, re-entering itself on the captured bodies of block quotes and
// list items and calling the inline grammar on paragraph and heading text.
//
// A conversion keeps all of its state in values local to the call,
// so independent documents may be converted concurrently.
package pegmark

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRenderer is returned by Convert when it is given a nil Renderer.
	ErrNoRenderer = errors.New("pegmark: no renderer")

	// ErrUnknownFormat is returned (wrapped) by NewRenderer and ConvertString
	// for a format name with no registered renderer.
	ErrUnknownFormat = errors.New("pegmark: unknown output format")

	// ErrIncomplete reports that the grammar failed to consume its input.
	// The grammar is meant to accept any text, so this error indicates a bug.
	ErrIncomplete = errors.New("pegmark: input not fully parsed")
)

// Options control a conversion.
// The parser consults Containers and StartNum;
// renderers consult the layout options they were created with.
type Options struct {
	// Containers wraps each heading and the blocks following it,
	// up to the next heading of the same or higher level, in a section.
	Containers bool

	// Minimize omits optional whitespace between output elements.
	Minimize bool

	// BlankLines separates blocks with a blank line instead of a single newline.
	BlankLines bool

	// StartNum makes ordered lists start at the number of their first item.
	// Otherwise every ordered list starts at 1.
	StartNum bool
}

// Convert converts the Markdown text to the output format of r.
// If opts is nil, Convert uses r.Defaults().
func Convert(text string, r Renderer, opts *Options) (string, error) {
	if r == nil {
		return "", ErrNoRenderer
	}
	o := r.Defaults()
	if opts != nil {
		o = *opts
	}

	s := Normalize(text)
	refs := NewRefTable()
	refs.Prescan(s)

	p := &parser{r: r, opts: o, refs: refs}
	body, end := p.section(s, 0, 0)
	if p.err == nil && end < len(s) {
		p.fail(s, end)
	}
	if p.err != nil {
		return "", p.err
	}
	return r.Start() + body + r.Stop(), nil
}

// ConvertString converts text to the named output format.
// If opts is nil, the format's default options are used.
func ConvertString(text, format string, opts *Options) (string, error) {
	r, err := NewRenderer(format, opts)
	if err != nil {
		return "", err
	}
	return Convert(text, r, opts)
}

// fail records that no block rule matched s[i:].
// Only the first failure is kept.
func (p *parser) fail(s string, i int) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: no rule matches at offset %d of %d", ErrIncomplete, i, len(s))
	}
}
