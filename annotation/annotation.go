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

// Package annotation provides the decorations attached to rows and ranges of a document.
//
// Annotations are immutable values. They are reconciled between document versions with
// [setdiff.Diff] and never move with the text.
package annotation

import (
	"fmt"

	"znkr.io/docsync/setdiff"
	"znkr.io/docsync/textpos"
)

// Type is the severity of an annotation.
type Type int

//go:generate go tool golang.org/x/tools/cmd/stringer -type=Type -linecomment

const (
	TypeError   Type = iota // error
	TypeWarning             // warning
	TypeInfo                // info
)

// ParseType parses the string form of a [Type].
func ParseType(s string) (Type, error) {
	for t := TypeError; t <= TypeInfo; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown annotation type %q", s)
}

// Annotation is the payload shared by row and range annotations.
type Annotation struct {
	Message string
	Type    Type
}

func (a Annotation) key() string { return fmt.Sprintf("%s\x00%s", a.Type, a.Message) }

// Row is an annotation attached to a whole row.
type Row struct {
	Row int
	Annotation
}

// Key orders row annotations by row.
func (r Row) Key() string { return fmt.Sprintf("%010d\x00%s", r.Row, r.key()) }

// RowRecord is the transport form of a [Row].
type RowRecord struct {
	Row     int    `json:"row" yaml:"row" toml:"row"`
	Message string `json:"message" yaml:"message" toml:"message"`
	Type    string `json:"type" yaml:"type" toml:"type"`
}

// Record returns the transport form of r.
func (r Row) Record() RowRecord {
	return RowRecord{Row: r.Row, Message: r.Message, Type: r.Type.String()}
}

// DecodeRow decodes the transport form of a row annotation.
func DecodeRow(rec RowRecord) (Row, error) {
	typ, err := ParseType(rec.Type)
	if err != nil {
		return Row{}, fmt.Errorf("row annotation %d: %w", rec.Row, err)
	}
	return Row{Row: rec.Row, Annotation: Annotation{Message: rec.Message, Type: typ}}, nil
}

// Range is an annotation attached to a range of text.
type Range struct {
	Range textpos.Range
	Annotation
}

// Key orders range annotations by their start position.
func (r Range) Key() string {
	return fmt.Sprintf("%010d\x00%010d\x00%010d\x00%010d\x00%s",
		r.Range.Start.Row, r.Range.Start.Col, r.Range.End.Row, r.Range.End.Col, r.key())
}

// RangeRecord is the transport form of a [Range].
type RangeRecord struct {
	Range   textpos.Record `json:"range" yaml:"range" toml:"range"`
	Message string         `json:"message" yaml:"message" toml:"message"`
	Type    string         `json:"type" yaml:"type" toml:"type"`
}

// Record returns the transport form of r.
func (r Range) Record() RangeRecord {
	return RangeRecord{Range: r.Range.Record(), Message: r.Message, Type: r.Type.String()}
}

// DecodeRange decodes the transport form of a range annotation.
func DecodeRange(rec RangeRecord) (Range, error) {
	typ, err := ParseType(rec.Type)
	if err != nil {
		return Range{}, fmt.Errorf("range annotation %v: %w", textpos.FromRecord(rec.Range), err)
	}
	return Range{
		Range:      textpos.FromRecord(rec.Range),
		Annotation: Annotation{Message: rec.Message, Type: typ},
	}, nil
}

// RowDiffRecord and RangeDiffRecord are the transport forms of the annotation set diffs.
type (
	RowDiffRecord   = setdiff.Record[RowRecord]
	RangeDiffRecord = setdiff.Record[RangeRecord]
)

// RowDiffToRecord returns the transport form of a row annotation diff, nil if d is absent.
func RowDiffToRecord(d *setdiff.Diff[Row]) *RowDiffRecord {
	return setdiff.ToRecord[Row, RowRecord](d)
}

// RowDiffFromRecord decodes the transport form of a row annotation diff.
func RowDiffFromRecord(rec *RowDiffRecord) (*setdiff.Diff[Row], error) {
	return setdiff.FromRecord(rec, DecodeRow)
}

// RangeDiffToRecord returns the transport form of a range annotation diff, nil if d is absent.
func RangeDiffToRecord(d *setdiff.Diff[Range]) *RangeDiffRecord {
	return setdiff.ToRecord[Range, RangeRecord](d)
}

// RangeDiffFromRecord decodes the transport form of a range annotation diff.
func RangeDiffFromRecord(rec *RangeDiffRecord) (*setdiff.Diff[Range], error) {
	return setdiff.FromRecord(rec, DecodeRange)
}
