// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdconvert converts Markdown to HTML, LaTeX, man pages, or Markdown.
//
// Usage:
//
//	mdconvert [-t format] [--containers] [--minimize] [--blank-lines] [-v] [--max-bytes N] [file...]
//
// Mdconvert reads the named files, or else standard input, as Markdown documents
// and then prints each converted document to standard output.
//
// The -t flag selects the output format: html (the default), latex, man, or markdown.
// Each flag may also be set in the environment, as MDCONVERT_TO and so on.
//
// Mdconvert exits with status 1 if a file cannot be read or converted,
// 2 for a usage error, and 3 for an unknown output format.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"rsc.io/pegmark"
)

// cli is the mdconvert command line.
type cli struct {
	To         string   `short:"t" default:"html" env:"MDCONVERT_TO" help:"Output format (${formats})."`
	Containers bool     `env:"MDCONVERT_CONTAINERS" help:"Wrap each heading and the blocks under it in a section."`
	Minimize   bool     `env:"MDCONVERT_MINIMIZE" help:"Omit optional whitespace between elements."`
	BlankLines bool     `name:"blank-lines" env:"MDCONVERT_BLANK_LINES" help:"Separate blocks with blank lines."`
	Verbose    bool     `short:"v" env:"MDCONVERT_VERBOSE" help:"Log each conversion to standard error."`
	MaxBytes   int64    `name:"max-bytes" default:"67108864" env:"MDCONVERT_MAX_BYTES" help:"Largest input accepted, in bytes (0 for no limit)."`
	Files      []string `arg:"" optional:"" help:"Markdown files to convert (default standard input)."`
}

// Exit statuses.
const (
	exitOK     = 0
	exitIO     = 1
	exitUsage  = 2
	exitFormat = 3
)

const description = "Convert Markdown to HTML, LaTeX, man pages, or Markdown."

// exitCode is panicked by kong's exit hook and recovered by run,
// so that --help returns from run instead of exiting the process.
type exitCode int

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run runs mdconvert with the given arguments and standard files
// and returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (status int) {
	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			status = int(code)
		}
	}()

	diag := log.New(stderr, "mdconvert: ", 0)

	var c cli
	k, err := kong.New(&c,
		kong.Name("mdconvert"),
		kong.Description(description),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitCode(code)) }),
		kong.Vars{"formats": strings.Join(pegmark.Formats(), ", ")},
	)
	if err != nil {
		panic(err)
	}
	if _, err := k.Parse(args); err != nil {
		diag.Print(err)
		return exitUsage
	}

	logger := newLogger(stderr, c.Verbose)

	opts, err := c.options()
	if err != nil {
		diag.Print(err)
		return exitFormat
	}
	r, err := pegmark.NewRenderer(c.To, &opts)
	if err != nil {
		diag.Print(err)
		return exitFormat
	}
	logger.Debug("renderer ready", "format", c.To, "options", fmt.Sprintf("%+v", opts))

	conv := &converter{r: r, opts: opts, max: c.MaxBytes, out: stdout, log: logger}
	if len(c.Files) == 0 {
		if err := conv.convert("<stdin>", stdin); err != nil {
			diag.Print(err)
			return exitIO
		}
		return exitOK
	}
	status = exitOK
	for _, file := range c.Files {
		f, err := os.Open(file)
		if err != nil {
			diag.Print(err)
			status = exitIO
			continue
		}
		err = conv.convert(file, f)
		f.Close()
		if err != nil {
			diag.Print(err)
			status = exitIO
		}
	}
	return status
}

// options returns the conversion options selected by the command line:
// the format's defaults with the layout flags added.
func (c *cli) options() (pegmark.Options, error) {
	opts, err := pegmark.DefaultOptions(c.To)
	if err != nil {
		return opts, err
	}
	opts.Containers = opts.Containers || c.Containers
	opts.Minimize = opts.Minimize || c.Minimize
	opts.BlankLines = opts.BlankLines || c.BlankLines
	return opts, nil
}

// newLogger returns a text logger writing to w,
// at debug level when verbose and otherwise only for warnings.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}))
}

// A converter converts documents with one renderer.
type converter struct {
	r    pegmark.Renderer
	opts pegmark.Options
	max  int64
	out  io.Writer
	log  *slog.Logger
}

var errTooLarge = errors.New("input too large")

// convert reads a document from f and writes its conversion to c.out.
func (c *converter) convert(name string, f io.Reader) error {
	data, err := readLimited(f, c.max)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	out, err := pegmark.Convert(string(data), c.r, &c.opts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if _, err := io.WriteString(c.out, out); err != nil {
		return err
	}
	c.log.Debug("converted", "file", name, "in", len(data), "out", len(out), "elapsed", time.Since(start))
	return nil
}

// readLimited reads all of r, failing if it holds more than limit bytes.
// A limit of 0 or less means no limit.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", errTooLarge, limit)
	}
	return data, nil
}
