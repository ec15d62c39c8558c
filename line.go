// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"
	"unicode/utf8"
)

// tabStop is the distance between tab stops.
// See https://spec.commonmark.org/0.30/#tabs.
const tabStop = 4

// Normalize returns text prepared for parsing:
// tabs are expanded to spaces up to the next 4-column tab stop,
// every line ends in a newline, and one blank line is appended.
// Empty text normalizes to a single blank line.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	for text != "" {
		line := text
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			text = ""
		}
		b.WriteString(expandTabs(line))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// expandTabs replaces the tabs in line with spaces up to the next tab stop.
// Columns are counted in runes from the start of the line,
// so a tab after earlier tabs still aligns to an absolute column.
//
// This function does not handle multi-codepoint Unicode sequences correctly.
func expandTabs(line string) string {
	if strings.IndexByte(line, '\t') < 0 {
		return line
	}
	var b strings.Builder
	col := 0
	for i := 0; i < len(line); {
		_, size := utf8.DecodeRuneInString(line[i:])
		if line[i] == '\t' {
			b.WriteByte(' ')
			col++
			for col%tabStop != 0 {
				b.WriteByte(' ')
				col++
			}
		} else {
			b.WriteString(line[i : i+size])
			col++
		}
		i += size
	}
	return b.String()
}

// The functions below operate on a string s and an offset i
// that is always at the start of a line unless noted otherwise.
// A matcher returns the offset just past what it matched and whether it matched;
// on failure the returned offset is meaningless.

// lineEnd returns the offset just past the newline ending the line that contains s[i],
// or len(s) if that line is unterminated.
func lineEnd(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(s)
}

// lineText returns the line starting at s[i] without its newline.
func lineText(s string, i int) string {
	return strings.TrimSuffix(s[i:lineEnd(s, i)], "\n")
}

// skipSpaceTab returns the offset of the first byte at or after i
// that is not a space or tab.
func skipSpaceTab(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// blankLine matches a line containing only spaces and tabs.
// An unterminated run of spaces at the end of s counts as a blank line,
// but the empty string at the end of s does not.
func blankLine(s string, i int) (int, bool) {
	j := skipSpaceTab(s, i)
	if j < len(s) && s[j] == '\n' {
		return j + 1, true
	}
	if j == len(s) && j > i {
		return j, true
	}
	return i, false
}

// isBlank reports whether s[i:] starts with a blank line.
func isBlank(s string, i int) bool {
	_, ok := blankLine(s, i)
	return ok
}

// blankLines skips any number of blank lines.
func blankLines(s string, i int) int {
	for {
		j, ok := blankLine(s, i)
		if !ok {
			return i
		}
		i = j
	}
}

// countBlankLines skips any number of blank lines, reporting how many it skipped.
func countBlankLines(s string, i int) (int, int) {
	n := 0
	for {
		j, ok := blankLine(s, i)
		if !ok {
			return i, n
		}
		i = j
		n++
	}
}

// nonIndentSpace matches up to three spaces that are not followed by a further space or tab.
func nonIndentSpace(s string, i int) (int, bool) {
	j := i
	for j < len(s) && j-i < 3 && s[j] == ' ' {
		j++
	}
	if j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		return i, false
	}
	return j, true
}

// indent matches one level of code indentation:
// four spaces, or up to three spaces and a tab.
func indent(s string, i int) (int, bool) {
	j := i
	for j < len(s) && j-i < 4 && s[j] == ' ' {
		j++
	}
	if j-i == 4 {
		return j, true
	}
	if j < len(s) && s[j] == '\t' {
		return j + 1, true
	}
	return i, false
}

// optionalIndent skips one level of indentation if present.
func optionalIndent(s string, i int) int {
	j, _ := indent(s, i)
	return j
}

// spnl matches optional spaces, at most one newline that does not
// begin a blank line, and more optional spaces.
// Unlike the other matchers, i need not be at the start of a line.
func spnl(s string, i int) int {
	i = skipSpaceTab(s, i)
	if i < len(s) && s[i] == '\n' && i+1 < len(s) && !isBlank(s, i+1) {
		i = skipSpaceTab(s, i+1)
	}
	return i
}

func trimLeftSpaceTab(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

func trimRightSpaceTab(s string) string {
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[:j]
}

func trimSpaceTab(s string) string {
	return trimRightSpaceTab(trimLeftSpaceTab(s))
}

func trimSpaceTabNewline(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	s = s[i:]
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n') {
		j--
	}
	return s[:j]
}
