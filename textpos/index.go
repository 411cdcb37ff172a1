// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textpos

import (
	"strings"
	"unicode/utf8"
)

// Index maps between byte offsets and positions in a text.
type Index struct {
	text   string
	starts []int // byte offset of the first character of every line
}

// NewIndex creates an index for text. Lines are separated by '\n'; a trailing newline starts an
// empty last line.
func NewIndex(text string) *Index {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for off := 0; ; {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			break
		}
		off += i + 1
		starts = append(starts, off)
	}
	return &Index{text: text, starts: starts}
}

// Lines returns the number of lines in the indexed text.
func (x *Index) Lines() int { return len(x.starts) }

// Text returns the indexed text.
func (x *Index) Text() string { return x.text }

// Len returns the length of the indexed text in bytes.
func (x *Index) Len() int { return len(x.text) }

// line returns the text of the row-th line without its newline.
func (x *Index) line(row int) string {
	end := len(x.text)
	if row+1 < len(x.starts) {
		end = x.starts[row+1] - 1
	}
	return x.text[x.starts[row]:end]
}

// Offset returns the byte offset of p. Positions outside of the text are clamped: rows after the
// last line map to the end of the text and columns after the end of a line map to the end of that
// line.
func (x *Index) Offset(p Pos) int {
	switch {
	case p.Row < 0:
		return 0
	case p.Row >= len(x.starts):
		return len(x.text)
	}
	line := x.line(p.Row)
	off := 0
	for col := 0; col < p.Col && off < len(line); col++ {
		_, size := utf8.DecodeRuneInString(line[off:])
		off += size
	}
	return x.starts[p.Row] + off
}

// Pos returns the position of the byte offset off. Offsets are clamped to the text.
func (x *Index) Pos(off int) Pos {
	off = max(0, min(off, len(x.text)))
	// Find the last line starting at or before off.
	lo, hi := 0, len(x.starts)
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if x.starts[mid] <= off {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Pos{Row: lo, Col: utf8.RuneCountInString(x.text[x.starts[lo]:off])}
}

// Clamp returns the position nearest to p that exists in the indexed text.
func (x *Index) Clamp(p Pos) Pos { return x.Pos(x.Offset(p)) }
