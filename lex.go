// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"

	"golang.org/x/net/html"
)

// isPunct reports whether c is Markdown punctuation.
// Any punctuation character can be escaped with a backslash.
func isPunct(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isLetterDigit reports whether c is an ASCII letter or digit.
func isLetterDigit(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}

// isLDH reports whether c is an ASCII letter, digit, or hyphen.
func isLDH(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' || c == '-'
}

// isHexDigit reports whether c is an ASCII hexadecimal digit.
func isHexDigit(c byte) bool {
	return 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f' || '0' <= c && c <= '9'
}

// isSpaceNL reports whether c is a space, tab, or newline.
func isSpaceNL(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// isSpecial reports whether c can begin an inline construct other than plain text.
// Runs of other bytes are always literal text.
func isSpecial(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '*', '_', '`', '[', ']', '!', '<', '&', '\\':
		return true
	}
	return false
}

// skipSpace returns i + the number of spaces, tabs, and newlines
// at the start of s[i:]. That is, it skips i past any such characters, returning the new i.
func skipSpace(s string, i int) int {
	for i < len(s) && isSpaceNL(s[i]) {
		i++
	}
	return i
}

// mdEscaper escapes symbols that are used in inline Markdown sequences.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`[`, `\[`,
	`]`, `\]`,
	`*`, `\*`,
	`_`, `\_`,
	`<`, `\<`,
	`>`, `\>`,
	`&`, `\&`,
	`#`, `\#`,
)

// mdLinkEscaper escapes symbols that have meaning inside a link target.
var mdLinkEscaper = strings.NewReplacer(
	`\`, `\\`,
	`(`, `\(`,
	`)`, `\)`,
	`<`, `\<`,
	`>`, `\>`,
)

// mdUnescape returns the Markdown unescaping of s:
// backslash escapes of punctuation are removed
// and HTML character references are decoded.
func mdUnescape(s string) string {
	if !strings.Contains(s, `\`) && !strings.Contains(s, `&`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isPunct(s[i+1]):
			i++
			b.WriteByte(s[i])
		case c == '&':
			// Decode one reference at a time so that an escaped \&
			// is never combined with the text after it.
			j := strings.IndexByte(s[i:], ';')
			if j < 0 || j > 40 {
				b.WriteByte(c)
				continue
			}
			b.WriteString(html.UnescapeString(s[i : i+j+1]))
			i += j
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
