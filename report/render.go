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
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Render renders this diagnostic report in a format suitable for showing to a user.
func (r Report) Render(style Style) string {
	var out strings.Builder
	var errors, warnings int
	for i := range r {
		out.WriteString(r[i].Render(style))
		out.WriteString("\n")
		if style != Simple {
			out.WriteString("\n")
		}
		switch r[i].Level {
		case Error:
			errors++
		case Warning:
			warnings++
		}
	}
	if style == Simple {
		return out.String()
	}

	var color color
	if style == Colored {
		color = ansiColor()
	}

	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	switch {
	case errors > 0:
		fmt.Fprint(&out, color.bRed, "encountered ", pluralize(errors, "error"))
		if warnings > 0 {
			fmt.Fprint(&out, " and ", pluralize(warnings, "warning"))
		}
		fmt.Fprintln(&out, color.reset)
	case warnings > 0:
		fmt.Fprintln(&out, color.bYellow+"encountered "+pluralize(warnings, "warning")+color.reset)
	}

	return out.String()
}

// Render renders this diagnostic in a format suitable for showing to a user.
//
// The Simple style imitates the Go compiler and fits on one line. The other
// styles imitate rustc, printing an annotated window of source per file.
func (d *Diagnostic) Render(style Style) string {
	level := d.Level.String()

	if style == Simple {
		file, start, _ := d.Primary()
		if file.Path == "" {
			file.Path = "<unknown>"
		}
		if start.Line == 0 {
			return fmt.Sprintf("%s: %s: %s", level, file.Path, d.Err.Error())
		}
		return fmt.Sprintf("%s: %s:%d:%d: %s", level, file.Path, start.Line, start.Column, d.Err.Error())
	}

	var color color
	if style == Colored {
		color = ansiColor()
	}

	var out strings.Builder
	out.WriteString(color.BoldForLevel(d.Level))
	out.WriteString(level)
	if d.kind != "" {
		fmt.Fprintf(&out, "[%s]", d.kind)
	}
	fmt.Fprint(&out, ": ", d.Err.Error(), color.reset)

	var greatestLine int
	for _, snip := range d.snippets {
		greatestLine = max(greatestLine, snip.end.Line)
	}
	gutter := max(2, len(fmt.Sprint(greatestLine)))
	pad := strings.Repeat(" ", gutter)

	for i, snippets := range partition(d.snippets, func(a, b *snippet) bool { return a.file.Path != b.file.Path }) {
		arrow := "-->"
		if i > 0 {
			arrow = ":::"
		}
		first := snippets[0]
		fmt.Fprintf(&out, "\n%s%s%s %s:%d:%d", color.nBlue, pad, arrow, first.file.Path, first.start.Line, first.start.Column)
		fmt.Fprintf(&out, "\n%s%s |", color.nBlue, pad)

		renderWindow(&out, d.Level, snippets, gutter, &color)
	}

	if len(d.snippets) == 0 {
		path := d.mention
		if path == "" {
			path = "<unknown>"
		}
		fmt.Fprintf(&out, "\n%s%s--> %s:?:?%s", color.nBlue, pad, path, color.reset)
	}

	var footers [][2]string
	for _, note := range d.notes {
		footers = append(footers, [2]string{"note", note})
	}
	for _, help := range d.help {
		footers = append(footers, [2]string{"help", help})
	}
	for i, frame := range d.trace {
		if debugMode < debugFull && i > 0 {
			break
		}
		footers = append(footers,
			[2]string{"debug", "at " + frame.Function},
			[2]string{"debug", fmt.Sprintf("   %s:%d", frame.File, frame.Line)},
		)
	}
	for _, footer := range footers {
		fmt.Fprintf(&out, "\n%s%s = %s%s: %s%s", color.nBlue, pad, color.bCyan, footer[0], color.reset, footer[1])
	}

	return out.String()
}

// renderWindow prints every source line touched by snippets (which all
// belong to one file), each followed by the underlines that point into it.
//
// A snippet spanning several lines is underlined on its first line, up to
// the end of that line, and its message notes where it ends.
func renderWindow(out *strings.Builder, level Level, snippets []snippet, gutter int, color *color) {
	type mark struct {
		start, end int // 1-indexed columns, end exclusive.
		level      Level
		message    string
	}

	text := snippets[0].file.Text
	byLine := make(map[int][]mark)
	for _, snip := range snippets {
		m := mark{start: snip.start.Column, end: snip.end.Column, level: note, message: snip.message}
		if snip.primary {
			m.level = level
		}
		if snip.end.Line != snip.start.Line {
			line := lineText(text, snip.start.Offset)
			m.end = stringWidth(line, 0) + 1
			if m.message != "" {
				m.message += fmt.Sprintf(" (through line %d)", snip.end.Line)
			}
		}
		if m.end <= m.start {
			m.end = m.start + 1
		}
		byLine[snip.start.Line] = append(byLine[snip.start.Line], m)
	}

	lines := make([]int, 0, len(byLine))
	for line := range byLine {
		lines = append(lines, line)
	}
	slices.Sort(lines)

	pad := strings.Repeat(" ", gutter)
	for i, lineno := range lines {
		if i > 0 && lines[i-1]+1 != lineno {
			fmt.Fprintf(out, "\n%s%s ~", color.bBlue, pad)
		}

		marks := byLine[lineno]
		slices.SortFunc(marks, func(a, b mark) int { return a.start - b.start })

		var offset int
		for _, snip := range snippets {
			if snip.start.Line == lineno {
				offset = snip.start.Offset
				break
			}
		}
		source := expandTabs(lineText(text, offset))
		fmt.Fprintf(out, "\n%s%*d | %s%s", color.nBlue, gutter, lineno, color.reset, source)

		// All marks share one row of carets; the rightmost message goes
		// inline and the rest get a row each below it.
		var row strings.Builder
		col := 1
		for _, m := range marks {
			if m.start < col {
				continue
			}
			row.WriteString(strings.Repeat(" ", m.start-col))
			row.WriteString(color.BoldForLevel(m.level))
			char := "^"
			if m.level == note || m.level == Remark {
				char = "-"
			}
			row.WriteString(strings.Repeat(char, m.end-m.start))
			row.WriteString(color.reset)
			col = m.end
		}
		last := marks[len(marks)-1]
		if last.message != "" {
			row.WriteString(" " + color.BoldForLevel(last.level) + last.message + color.reset)
		}
		fmt.Fprintf(out, "\n%s%s | %s%s", color.bBlue, pad, color.reset, row.String())

		for _, m := range slices.Backward(marks[:len(marks)-1]) {
			if m.message == "" {
				continue
			}
			fmt.Fprintf(out, "\n%s%s | %s%s%s%s",
				color.bBlue, pad, strings.Repeat(" ", m.start-1),
				color.BoldForLevel(m.level), m.message, color.reset)
		}
	}
}

// lineText returns the line of text containing offset, without its newline.
func lineText(text string, offset int) string {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		return text[start:]
	}
	return strings.TrimSuffix(text[start:offset+end], "\r")
}

// expandTabs replaces every tab with enough spaces to reach the next tabstop,
// so that underline columns agree with the printed source.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var out strings.Builder
	for {
		tab := strings.IndexByte(s, '\t')
		if tab < 0 {
			out.WriteString(s)
			return out.String()
		}
		out.WriteString(s[:tab])
		width := stringWidth(out.String(), 0)
		out.WriteString(strings.Repeat(" ", TabstopWidth-width%TabstopWidth))
		s = s[tab+1:]
	}
}

// color is the colors used for pretty-rendering diagnostics.
type color struct {
	reset string
	// Normal colors.
	nBlue string
	// Bold colors.
	bRed, bYellow, bCyan, bBlue string
}

func ansiColor() color {
	return color{
		reset:   "\033[0m",
		nBlue:   "\033[0;34m",
		bRed:    "\033[1;31m",
		bYellow: "\033[1;33m",
		bCyan:   "\033[1;36m",
		bBlue:   "\033[1;34m",
	}
}

func (c color) BoldForLevel(l Level) string {
	switch l {
	case Error:
		return c.bRed
	case Warning:
		return c.bYellow
	case Remark:
		return c.bCyan
	case note:
		return c.bBlue
	default:
		return ""
	}
}

// partition returns an iterator of subslices of s such that each yielded
// slice is delimited according to delimit. Also yields the index of the
// subslice.
//
// Will never yield an empty slice.
func partition[T any](s []T, delimit func(a, b *T) bool) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		var start, n int
		for i := 1; i < len(s); i++ {
			if delimit(&s[i-1], &s[i]) {
				if !yield(n, s[start:i]) {
					return
				}
				start = i
				n++
			}
		}
		if rest := s[start:]; len(rest) > 0 {
			yield(n, rest)
		}
	}
}
