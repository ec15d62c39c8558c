// Copyright 2021 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdfmt reformats Markdown data.
//
// Usage:
//
//	mdfmt [-w] [file...]
//
// Mdfmt reads the named files, or else standard input, as Markdown documents
// and then reprints the same Markdown documents to standard output,
// in a canonical style: ATX headings, * for emphasis, inline links,
// and four-space indentation for code blocks and list item contents.
// Reformatting the output again leaves it unchanged.
//
// The -w flag specifies to rewrite the files in place.
// Files already in canonical form are left untouched.
//
// Mdfmt exits with status 1 if any file cannot be read or reformatted
// and 2 for a usage error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"rsc.io/pegmark"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run runs mdfmt with the given arguments and standard files
// and returns the exit status: 0 on success, 1 if any file
// could not be reformatted, and 2 for a usage error.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	diag := log.New(stderr, "mdfmt: ", 0)
	fs := flag.NewFlagSet("mdfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	write := fs.Bool("w", false, "write reformatted Markdown to files")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: mdfmt [-w] [file...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if fs.NArg() == 0 {
		if *write {
			diag.Print("cannot use -w with standard input")
			return 2
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			diag.Print(err)
			return 1
		}
		out, err := format(data)
		if err != nil {
			diag.Print(err)
			return 1
		}
		stdout.Write(out)
		return 0
	}

	status := 0
	for _, file := range fs.Args() {
		if err := formatFile(file, *write, stdout); err != nil {
			diag.Print(err)
			status = 1
		}
	}
	return status
}

// format returns the canonical form of the Markdown document md.
func format(md []byte) ([]byte, error) {
	out, err := pegmark.ConvertString(string(md), "markdown", nil)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// formatFile reformats the named file, rewriting it in place if write is set
// and otherwise printing the result to stdout.
// An unchanged file is not rewritten.
func formatFile(file string, write bool, stdout io.Writer) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	out, err := format(data)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if !write {
		_, err := stdout.Write(out)
		return err
	}
	if string(out) == string(data) {
		return nil
	}
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	return os.WriteFile(file, out, info.Mode().Perm())
}
