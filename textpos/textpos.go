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

// Package textpos provides positions and ranges in multi-line text.
//
// Rows and columns are 0-based. Columns count runes, not bytes, so that a position stays meaningful
// for any client that treats the text as a sequence of characters.
package textpos

import "fmt"

// Pos is a row/column position in a text.
type Pos struct {
	Row, Col int
}

// Compare returns -1 if p is before o, 0 if p == o, and 1 if p is after o in document order.
func (p Pos) Compare(o Pos) int {
	switch {
	case p.Row < o.Row:
		return -1
	case p.Row > o.Row:
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	default:
		return 0
	}
}

// Before reports whether p comes before o in document order.
func (p Pos) Before(o Pos) bool { return p.Compare(o) < 0 }

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Row, p.Col) }

// Range is a span of text between two positions. A Range created by [NewRange] or [FromRecord] is
// always normalized, i.e., Start is not after End.
type Range struct {
	Start, End Pos
}

// NewRange returns the normalized range between (startRow, startCol) and (endRow, endCol).
func NewRange(startRow, startCol, endRow, endCol int) Range {
	return Range{
		Start: Pos{startRow, startCol},
		End:   Pos{endRow, endCol},
	}.Normalize()
}

// IsBackwards reports whether the end of r comes before its start.
func (r Range) IsBackwards() bool { return r.End.Before(r.Start) }

// Normalize returns r with its endpoints swapped if the end comes before the start.
func (r Range) Normalize() Range {
	if r.IsBackwards() {
		return r.Reverse()
	}
	return r
}

// Reverse returns r with its endpoints swapped.
func (r Range) Reverse() Range { return Range{Start: r.End, End: r.Start} }

// IsEmpty reports whether r covers no text.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether p lies within the half-open range [Start, End).
func (r Range) Contains(p Pos) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

func (r Range) String() string { return fmt.Sprintf("[%v-%v)", r.Start, r.End) }

// Record is the transport representation of a [Range].
type Record struct {
	StartRow int `json:"startRow" yaml:"startRow" toml:"startRow"`
	StartCol int `json:"startCol" yaml:"startCol" toml:"startCol"`
	EndRow   int `json:"endRow" yaml:"endRow" toml:"endRow"`
	EndCol   int `json:"endCol" yaml:"endCol" toml:"endCol"`
}

// Record returns the transport representation of r.
func (r Range) Record() Record {
	return Record{
		StartRow: r.Start.Row,
		StartCol: r.Start.Col,
		EndRow:   r.End.Row,
		EndCol:   r.End.Col,
	}
}

// FromRecord returns the normalized range described by rec.
func FromRecord(rec Record) Range {
	return NewRange(rec.StartRow, rec.StartCol, rec.EndRow, rec.EndCol)
}
