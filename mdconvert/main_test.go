// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mdconvert runs the command with args and stdin,
// returning its exit status, standard output, and standard error.
func mdconvert(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	status := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

func TestFormats(t *testing.T) {
	for _, tt := range []struct {
		args []string
		want string
	}{
		{nil, "<h1>Hi</h1>\n"},
		{[]string{"-t", "man"}, ".SH Hi\n"},
		{[]string{"-t", "groff"}, ".SH Hi\n"},
		{[]string{"--to=latex"}, "\\section{Hi}\n"},
		{[]string{"-t", "md"}, "# Hi\n"},
		{[]string{"--minimize"}, "<h1>Hi</h1>"},
	} {
		status, out, errout := mdconvert(t, "# Hi\n", tt.args...)
		assert.Equal(t, exitOK, status, "%v: %s", tt.args, errout)
		assert.Equal(t, tt.want, out, "%v", tt.args)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("MDCONVERT_TO", "latex")
	status, out, _ := mdconvert(t, "# Hi\n")
	assert.Equal(t, exitOK, status)
	assert.Equal(t, "\\section{Hi}\n", out)

	// Flags override the environment.
	status, out, _ = mdconvert(t, "# Hi\n", "-t", "html")
	assert.Equal(t, exitOK, status)
	assert.Equal(t, "<h1>Hi</h1>\n", out)
}

func TestUnknownFormat(t *testing.T) {
	status, out, errout := mdconvert(t, "# Hi\n", "-t", "pdf")
	assert.Equal(t, exitFormat, status)
	assert.Empty(t, out)
	assert.Contains(t, errout, "unknown output format")
	assert.True(t, strings.HasPrefix(errout, "mdconvert: "), "%q", errout)
}

func TestUsage(t *testing.T) {
	status, _, errout := mdconvert(t, "", "--bogus")
	assert.Equal(t, exitUsage, status)
	assert.Contains(t, errout, "bogus")

	status, out, _ := mdconvert(t, "", "--help")
	assert.Equal(t, exitOK, status)
	assert.Contains(t, out, "mdconvert")
	assert.Contains(t, out, "html, latex, man, markdown")
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("*a*\n"), 0666))
	require.NoError(t, os.WriteFile(b, []byte("b\n"), 0666))

	status, out, errout := mdconvert(t, "ignored", a, b)
	assert.Equal(t, exitOK, status, errout)
	assert.Equal(t, "<p><em>a</em></p>\n<p>b</p>\n", out)

	// A missing file is reported, and the others are still converted.
	missing := filepath.Join(dir, "missing.md")
	status, out, errout = mdconvert(t, "", missing, b)
	assert.Equal(t, exitIO, status)
	assert.Equal(t, "<p>b</p>\n", out)
	assert.Contains(t, errout, "missing.md")
}

func TestMaxBytes(t *testing.T) {
	status, out, errout := mdconvert(t, "hello\n", "--max-bytes", "3")
	assert.Equal(t, exitIO, status)
	assert.Empty(t, out)
	assert.Contains(t, errout, "<stdin>: input too large")

	status, out, _ = mdconvert(t, "hello\n", "--max-bytes", "0")
	assert.Equal(t, exitOK, status)
	assert.Equal(t, "<p>hello</p>\n", out)
}

func TestVerbose(t *testing.T) {
	status, _, errout := mdconvert(t, "x\n", "-v")
	assert.Equal(t, exitOK, status)
	assert.Contains(t, errout, "level=DEBUG")
	assert.Contains(t, errout, "msg=converted")
	assert.Contains(t, errout, "file=")

	_, _, errout = mdconvert(t, "x\n")
	assert.Empty(t, errout)
}

func TestReadLimited(t *testing.T) {
	data, err := readLimited(strings.NewReader("abc"), 3)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	_, err = readLimited(strings.NewReader("abcd"), 3)
	require.ErrorIs(t, err, errTooLarge)

	data, err = readLimited(strings.NewReader("abcd"), 0)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))
}
