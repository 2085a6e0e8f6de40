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

package report

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// The size we render all tabstops as.
const TabstopWidth int = 4

// Span is any type that can be used to generate source code information for a diagnostic.
type Span interface {
	File() File
	Start() Location
	End() Location
}

// File is a source code file involved in a diagnostic.
type File struct {
	// The filesystem path for this string. It doesn't need to be a real path, but
	// it will be used to deduplicate spans according to their file.
	Path string

	// The complete text of the file.
	Text string
}

// Location is a user-displayable location within a source code file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed.
	//
	// Column counts terminal cells rather than bytes: 貓 is two columns
	// wide, and so is the multi-rune emoji sequence 🐈‍⬛.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line, Column int

	// The UTF-16 code unit offset from the start of the line, for the
	// benefit of editor protocols.
	UTF16 int
}

// IndexedFile is an index of line information from a [File], which permits
// O(log n) calculation of [Location]s from offsets.
//
// An IndexedFile is safe to share between goroutines.
type IndexedFile struct {
	file File

	once sync.Once
	// Byte offset of the start of each line. Given a byte offset, the line
	// containing it is found by binary search.
	lines []int
}

// NewIndexedFile constructs a line index for the given text. The index itself
// is built lazily, on the first search.
func NewIndexedFile(file File) *IndexedFile {
	return &IndexedFile{file: file}
}

// File returns the file that this index indexes.
func (i *IndexedFile) File() File {
	return i.file
}

// NewSpan generates a span over the byte range [start, end) using this index.
func (i *IndexedFile) NewSpan(start, end int) Span {
	return naiveSpan{
		file:  i.File(),
		start: i.Search(start),
		end:   i.Search(end),
	}
}

// Search builds full Location information for the given byte offset.
//
// Offsets past the end of the file are clamped to its length.
func (i *IndexedFile) Search(offset int) Location {
	i.once.Do(func() {
		text := i.file.Text
		var next int
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}
			i.lines = append(i.lines, next)
			next += newline
			text = text[newline:]
		}
		i.lines = append(i.lines, next)
	})

	offset = max(0, min(offset, len(i.file.Text)))
	line, exact := slices.BinarySearch(i.lines, offset)
	if !exact {
		line--
	}

	chunk := i.file.Text[i.lines[line]:offset]
	var utf16Col int
	for _, r := range chunk {
		utf16Col += utf16.RuneLen(r)
	}

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: stringWidth(chunk, 0) + 1,
		UTF16:  utf16Col,
	}
}

// stringWidth measures how many terminal cells s occupies when it starts at
// column start (0-indexed). Tabs advance to the next multiple of
// TabstopWidth.
func stringWidth(s string, start int) int {
	width := start
	for {
		tab := strings.IndexByte(s, '\t')
		if tab < 0 {
			break
		}
		width += uniseg.StringWidth(s[:tab])
		width += TabstopWidth - width%TabstopWidth
		s = s[tab+1:]
	}
	return width + uniseg.StringWidth(s) - start
}

type naiveSpan struct {
	file       File
	start, end Location
}

func (s naiveSpan) File() File      { return s.file }
func (s naiveSpan) Start() Location { return s.start }
func (s naiveSpan) End() Location   { return s.end }
func (s naiveSpan) Span() Span      { return s }
