// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlEscaper escapes text for use in HTML content and quoted attribute values.
var htmlEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`"`, `&quot;`,
)

// htmlLinkEscaper escapes a URL for use in an HTML attribute value.
// Characters that cannot appear in a URL are percent-encoded.
var htmlLinkEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `%3C`,
	`>`, `%3E`,
	`"`, `%22`,
	` `, `%20`,
	"`", `%60`,
	`\`, `%5C`,
)

// prefixLines returns text with first inserted before its first line
// and rest inserted before each later line.
// Prefixes on otherwise empty lines have their trailing spaces removed,
// so that no output line ends in spaces.
func prefixLines(text, first, rest string) string {
	var b strings.Builder
	prefix := first
	for i, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			break
		}
		if i > 0 {
			prefix = rest
		}
		if line == "\n" {
			b.WriteString(strings.TrimRight(prefix, " "))
		} else {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

// indentLines is prefixLines with the same prefix on every line.
func indentLines(text, prefix string) string {
	return prefixLines(text, prefix, prefix)
}

// entityText returns the text of an HTML character reference such as
// &copy; or &#x1F600;, or the reference itself if it is not a known entity.
func entityText(ref string) string {
	return html.UnescapeString(ref)
}
