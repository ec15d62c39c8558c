// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var normalizeTests = []struct {
	in  string
	out string
}{
	{"", "\n"},
	{"a", "a\n\n"},
	{"a\n", "a\n\n"},
	{"a\nb", "a\nb\n\n"},
	{"\tx", "    x\n\n"},
	{"ab\tc", "ab  c\n\n"},
	{"abcd\te", "abcd    e\n\n"},
	{"a\tb\tc", "a   b   c\n\n"},
	{"é\tx", "é   x\n\n"},
	{"  \t", "    \n\n"},
}

func TestNormalize(t *testing.T) {
	for _, tt := range normalizeTests {
		assert.Equal(t, tt.out, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestBlankLine(t *testing.T) {
	s := "a\n  \n\t\n   "
	_, ok := blankLine(s, 0)
	assert.False(t, ok)
	end, ok := blankLine(s, 2)
	assert.True(t, ok)
	assert.Equal(t, 5, end)
	assert.Equal(t, len(s), blankLines(s, 2))

	i, n := countBlankLines(s, 2)
	assert.Equal(t, len(s), i)
	assert.Equal(t, 3, n)

	_, ok = blankLine(s, len(s))
	assert.False(t, ok, "empty string at end of text")
}

func TestIndent(t *testing.T) {
	for _, tt := range []struct {
		in  string
		end int
		ok  bool
	}{
		{"    x", 4, true},
		{"     x", 4, true},
		{"\tx", 1, true},
		{"  \tx", 3, true},
		{"   x", 0, false},
		{"x", 0, false},
	} {
		end, ok := indent(tt.in, 0)
		assert.Equal(t, tt.ok, ok, "indent(%q)", tt.in)
		if ok {
			assert.Equal(t, tt.end, end, "indent(%q)", tt.in)
		}
	}
}

func TestNonIndentSpace(t *testing.T) {
	for in, want := range map[string]int{
		"x":    0,
		" x":   1,
		"   x": 3,
	} {
		end, ok := nonIndentSpace(in, 0)
		assert.True(t, ok, in)
		assert.Equal(t, want, end, in)
	}
	_, ok := nonIndentSpace("    x", 0)
	assert.False(t, ok)
}

func TestSpnl(t *testing.T) {
	assert.Equal(t, 3, spnl("a  b", 1))
	assert.Equal(t, 5, spnl("a \n  b", 1))
	assert.Equal(t, 2, spnl("a \n\nb", 1), "newline into a blank line")
	assert.Equal(t, 2, spnl("a \n \n", 1), "newline into a blank line")
}

func TestListMarkers(t *testing.T) {
	for _, tt := range []struct {
		in  string
		m   marker
		end int
		num int
		ok  bool
	}{
		{"- a", bulletMarker, 2, 0, true},
		{"-   a", bulletMarker, 4, 0, true},
		{"-     a", bulletMarker, 4, 0, true},
		{"   * a", bulletMarker, 5, 0, true},
		{"+\n", bulletMarker, 1, 0, true},
		{"-a", bulletMarker, 0, 0, false},
		{"    - a", bulletMarker, 0, 0, false},
		{"1. a", orderedMarker, 3, 1, true},
		{"1.  a", orderedMarker, 4, 1, true},
		{"10. a", orderedMarker, 4, 10, true},
		{"10.  a", orderedMarker, 4, 10, true},
		{"123456789. a", orderedMarker, 11, 123456789, true},
		{"1234567890. a", orderedMarker, 0, 0, false},
		{"1) a", orderedMarker, 0, 0, false},
		{". a", orderedMarker, 0, 0, false},
	} {
		end, num, ok := tt.m(tt.in, 0)
		assert.Equal(t, tt.ok, ok, "%q", tt.in)
		if ok {
			assert.Equal(t, tt.end, end, "%q end", tt.in)
			assert.Equal(t, tt.num, num, "%q num", tt.in)
		}
	}
}
