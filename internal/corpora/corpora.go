// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora runs golden-file tests over a directory of inputs.
//
// Each input file produces a list of outputs, which are compared against files
// named after the input with an extra extension: for `foo.oml`, the
// diagnostics output might live in `foo.oml.stderr`. A missing output file is
// the same as an empty one.
//
// Setting the corpus's Refresh environment variable to a glob rewrites the
// outputs of every matching test instead of comparing them.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a table-driven test whose table is a directory.
type Corpus struct {
	// The directory to search for inputs, relative to the file that calls
	// [Corpus.Run].
	Root string

	// The environment variable holding the refresh glob.
	Refresh string

	// The extension of input files, without a dot.
	Extension string

	// The outputs every test produces, in the order Test returns them.
	Outputs []Output

	// Test runs one case and returns one string per element of Outputs.
	Test func(t *testing.T, c Case) []string
}

// Case is one input of a corpus.
type Case struct {
	// The input's path relative to the calling test's directory, which is also
	// the subtest name.
	Name string
	Text string
}

// Output is one of the outputs of a corpus test.
type Output struct {
	// Appended, after a dot, to the input's file name to find the golden
	// file.
	Extension string

	// Compares the output against the golden file; nil compares exactly.
	Compare Compare
}

// Compare reports the difference between two outputs, or "" if they are
// equivalent.
type Compare func(got, want string) string

// Run runs every case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	dir := callerDir()
	root := filepath.Join(dir, c.Root)

	var inputs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == "."+c.Extension {
			inputs = append(inputs, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("corpora: walking %q: %v", root, err)
	}
	slices.Sort(inputs)
	if len(inputs) == 0 {
		t.Fatalf("corpora: no .%s files under %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
	}
	if refresh != "" {
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: %s=%q is not a valid glob", c.Refresh, refresh)
		}
		// Refreshing never counts as passing.
		t.Logf("corpora: refreshing outputs matching %q", refresh)
		t.Fail()
	}

	for _, input := range inputs {
		name, _ := filepath.Rel(dir, input)
		t.Run(filepath.ToSlash(name), func(t *testing.T) {
			text, err := os.ReadFile(input)
			if err != nil {
				t.Fatalf("corpora: reading input: %v", err)
			}
			results := c.Test(t, Case{Name: filepath.ToSlash(name), Text: string(text)})
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			rewrite := refresh != "" && matches(refresh, filepath.ToSlash(name))
			for i, output := range c.Outputs {
				golden := fmt.Sprintf("%s.%s", input, output.Extension)
				if rewrite {
					if err := write(golden, results[i]); err != nil {
						t.Errorf("corpora: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(golden)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("corpora: reading %q: %v", golden, err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", golden, diff)
				}
			}
		})
	}
}

// Diff compares two outputs exactly, and describes any difference as a
// unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// write replaces a golden file, removing it when the output is empty.
func write(path, output string) error {
	if output == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(output), 0o644)
}

func matches(glob, name string) bool {
	ok, _ := doublestar.Match(glob, name)
	return ok
}

// callerDir returns the directory of the file that called Run.
func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("corpora: could not determine the calling test's directory")
	}
	return filepath.Dir(file)
}
