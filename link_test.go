// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	for in, want := range map[string]string{
		"Foo":           "foo",
		"Foo  Bar":      "foo bar",
		" x\n  y ":      "x y",
		"a\tb":          "a b",
		"ΑΓΩ":           "αγω",
		"[nested] text": "[nested] text",
	} {
		assert.Equal(t, want, normalizeLabel(in), "normalizeLabel(%q)", in)
	}
	assert.Equal(t, normalizeLabel("ÀB"), normalizeLabel("àb"))
}

func TestRefTable(t *testing.T) {
	refs := NewRefTable()
	assert.Equal(t, 0, refs.Len())

	refs.Define(Reference{Label: "Go", Dest: "/first"})
	refs.Define(Reference{Label: "go", Dest: "/second", Title: "T"})
	refs.Define(Reference{Label: "other", Dest: "/o"})
	assert.Equal(t, 2, refs.Len())

	ref, ok := refs.Lookup("GO")
	require.True(t, ok)
	assert.Equal(t, Reference{Label: "go", Dest: "/second", Title: "T"}, ref)

	_, ok = refs.Lookup("missing")
	assert.False(t, ok)
}

func TestPrescan(t *testing.T) {
	s := Normalize(`[a]: /1
[b]:
  /2 "two"
para [c]: /3

> [d]: /4

[e]: <x y> 'title'
  [g]:   /7   (paren)
[f]: /6 "bad" trailing
`)
	refs := NewRefTable()
	refs.Prescan(s)

	want := map[string]Reference{
		"a": {Label: "a", Dest: "/1"},
		"b": {Label: "b", Dest: "/2", Title: "two"},
		"e": {Label: "e", Dest: "x y", Title: "title"},
		"g": {Label: "g", Dest: "/7", Title: "paren"},
	}
	assert.Equal(t, len(want), refs.Len())
	for label, w := range want {
		ref, ok := refs.Lookup(label)
		if assert.True(t, ok, label) {
			assert.Equal(t, w, ref, label)
		}
	}
	for _, label := range []string{"c", "d", "f"} {
		_, ok := refs.Lookup(label)
		assert.False(t, ok, label)
	}
}

func TestParseLinkDest(t *testing.T) {
	for _, tt := range []struct {
		in   string
		dest string
		end  int
		ok   bool
	}{
		{"/url", "/url", 4, true},
		{"/url rest", "/url", 4, true},
		{"<a b>", "a b", 5, true},
		{"<>", "", 2, true},
		{"a(b)c", "a(b)c", 5, true},
		{"a(b", "", 0, false},
		{"a)b", "a", 1, true},
		{`a\)b`, "a)b", 4, true},
		{"a&amp;b", "a&b", 7, true},
		{"<a\nb>", "", 0, false},
		{"", "", 0, false},
	} {
		dest, end, ok := parseLinkDest(tt.in, 0)
		assert.Equal(t, tt.ok, ok, "parseLinkDest(%q)", tt.in)
		if ok {
			assert.Equal(t, tt.dest, dest, "parseLinkDest(%q)", tt.in)
			assert.Equal(t, tt.end, end, "parseLinkDest(%q)", tt.in)
		}
	}
}

func TestParseLinkLabel(t *testing.T) {
	for _, tt := range []struct {
		in    string
		label string
		ok    bool
	}{
		{"[a]", "a", true},
		{"[]", "", true},
		{"[a [b] c]", "a [b] c", true},
		{`[a \] b]`, `a \] b`, true},
		{"[a `]` b]", "a `]` b", true},
		{"[a\nb]", "a\nb", true},
		{"[a\n\nb]", "", false},
		{"[a", "", false},
		{"a]", "", false},
	} {
		label, _, ok := parseLinkLabel(tt.in, 0)
		assert.Equal(t, tt.ok, ok, "parseLinkLabel(%q)", tt.in)
		assert.Equal(t, tt.label, label, "parseLinkLabel(%q)", tt.in)
	}
}

func TestAutoLink(t *testing.T) {
	for _, tt := range []struct {
		in   string
		link string
		ok   bool
	}{
		{"<http://x.org/a?b>", "http://x.org/a?b", true},
		{"<irc://x>", "irc://x", true},
		{"<a:b>", "", false},
		{"<http://x y>", "", false},
		{"<not a link>", "", false},
	} {
		uri, _, ok := parseAutoLinkURI(tt.in, 0)
		assert.Equal(t, tt.ok, ok, "parseAutoLinkURI(%q)", tt.in)
		assert.Equal(t, tt.link, uri, "parseAutoLinkURI(%q)", tt.in)
	}

	for _, tt := range []struct {
		in    string
		email string
		ok    bool
	}{
		{"<me@x.org>", "me@x.org", true},
		{"<a.b+c@d-e.f>", "a.b+c@d-e.f", true},
		{"<me@-x.org>", "", false},
		{"<me@x.>", "", false},
		{"<me at x>", "", false},
	} {
		email, _, ok := parseAutoLinkEmail(tt.in, 0)
		assert.Equal(t, tt.ok, ok, "parseAutoLinkEmail(%q)", tt.in)
		assert.Equal(t, tt.email, email, "parseAutoLinkEmail(%q)", tt.in)
	}
}

func TestMdUnescape(t *testing.T) {
	for in, want := range map[string]string{
		`plain`:       `plain`,
		`a\*b`:        `a*b`,
		`a\b`:         `a\b`,
		`\\`:          `\`,
		`&amp;&lt;`:   `&<`,
		`&#65;&#x42;`: `AB`,
		`&bogus;`:     `&bogus;`,
		`a & b`:       `a & b`,
		`\&amp;`:      `&amp;`,
	} {
		assert.Equal(t, want, mdUnescape(in), "mdUnescape(%q)", in)
	}
}
