// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegmark

import (
	"bytes"
	"flag"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/tools/txtar"
)

var goldmarkFlag = flag.Bool("goldmark", false, "compare HTML tests with goldmark")

// Test runs the golden tests in testdata/*.txt.
// Each file is a txtar archive of pairs of files:
// name.md holds the input, and name.FORMAT holds the expected output
// in that format (html, latex, man, or markdown).
// The archive comment may set options, one "Key: value" per line.
func Test(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test files")
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}

			var ncase, npass int
			for i := 0; i+2 <= len(a.Files); i += 2 {
				ncase++
				md := a.Files[i]
				want := a.Files[i+1]
				ext := path.Ext(want.Name)
				format := strings.TrimPrefix(ext, ".")
				name := strings.TrimSuffix(md.Name, ".md")
				if name != strings.TrimSuffix(want.Name, ext) || !strings.HasSuffix(md.Name, ".md") {
					t.Fatalf("mismatched file pair: %s and %s", md.Name, want.Name)
				}

				opts, err := DefaultOptions(format)
				if err != nil {
					t.Fatalf("%s: %v", want.Name, err)
				}
				if err := setOptions(&opts, a.Comment); err != nil {
					t.Fatal(err)
				}

				t.Run(name, func(t *testing.T) {
					out, err := ConvertString(decode(string(md.Data)), format, &opts)
					if err != nil {
						t.Fatal(err)
					}
					if have := encode(out); have != string(want.Data) {
						t.Fatalf("input %q\nhave %q\nwant %q", md.Data, have, want.Data)
					}
					npass++
				})

				if !*goldmarkFlag || format != "html" || opts != (Options{BlankLines: true, StartNum: true}) {
					continue
				}
				// The grammar is not CommonMark, so differences are reported, not failed.
				t.Run("goldmark/"+name, func(t *testing.T) {
					gm := goldmark.New(goldmark.WithRendererOptions(ghtml.WithUnsafe()))
					var buf bytes.Buffer
					if err := gm.Convert([]byte(decode(string(md.Data))), &buf); err != nil {
						t.Fatal(err)
					}
					gout := strings.ReplaceAll(buf.String(), "\n\n", "\n")
					have := strings.ReplaceAll(decode(string(want.Data)), "\n\n", "\n")
					if strings.ReplaceAll(gout, " />", ">") != strings.ReplaceAll(have, " />", ">") {
						t.Logf("differs from goldmark:\n    - input: ``%q``\n    - goldmark: ``%q``\n    - golden: ``%q``\n    - [dingus](https://spec.commonmark.org/dingus/?text=%s)",
							md.Data, gout, have, strings.ReplaceAll(url.QueryEscape(decode(string(md.Data))), "+", "%20"))
					}
				})
			}
			t.Logf("%d/%d pass", npass, ncase)
		})
	}
}

func decode(s string) string {
	s = strings.ReplaceAll(s, "^J\n", "\n")
	s = strings.ReplaceAll(s, "^I", "\t")
	s = strings.ReplaceAll(s, "^D\n", "")
	return s
}

func encode(s string) string {
	s = strings.ReplaceAll(s, " \n", " ^J\n")
	s = strings.ReplaceAll(s, "\t", "^I")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "^D\n"
	}
	return s
}

// setOptions extracts lines of the form
//
//	key: value
//
// from data and sets the corresponding options.
func setOptions(opts *Options, data []byte) error {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "//") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("option %s: %v", key, err)
		}
		switch key {
		case "Containers":
			opts.Containers = b
		case "Minimize":
			opts.Minimize = b
		case "BlankLines":
			opts.BlankLines = b
		case "StartNum":
			opts.StartNum = b
		default:
			return fmt.Errorf("unknown option: %q", key)
		}
	}
	return nil
}
