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

package docsync

import (
	"fmt"

	"znkr.io/docsync/annotation"
	"znkr.io/docsync/marker"
	"znkr.io/docsync/textpatch"
)

// Record is the transport form of a [DocDiff]. A nil pointer marks an absent part.
type Record struct {
	Patch   string                      `json:"patchText" yaml:"patchText" toml:"patchText"`
	Markers *marker.Record              `json:"markerDiff" yaml:"markerDiff,omitempty" toml:"markerDiff,omitempty"`
	Rows    *annotation.RowDiffRecord   `json:"rowAnnotationDiff" yaml:"rowAnnotationDiff,omitempty" toml:"rowAnnotationDiff,omitempty"`
	Ranges  *annotation.RangeDiffRecord `json:"rangeAnnotationDiff" yaml:"rangeAnnotationDiff,omitempty" toml:"rangeAnnotationDiff,omitempty"`
}

// Record returns the transport form of d.
func (d *DocDiff) Record() Record {
	return Record{
		Patch:   d.patch.String(),
		Markers: d.markers.Record(),
		Rows:    annotation.RowDiffToRecord(d.rows),
		Ranges:  annotation.RangeDiffToRecord(d.ranges),
	}
}

// FromRecord decodes the transport form of a diff. Malformed patch text results in an error that
// wraps a [*textpatch.ParseError].
func FromRecord(rec Record) (*DocDiff, error) {
	patch, err := textpatch.Parse(rec.Patch)
	if err != nil {
		return nil, fmt.Errorf("patch text: %w", err)
	}
	markers, err := marker.FromRecord(rec.Markers)
	if err != nil {
		return nil, fmt.Errorf("marker diff: %w", err)
	}
	rows, err := annotation.RowDiffFromRecord(rec.Rows)
	if err != nil {
		return nil, fmt.Errorf("row annotation diff: %w", err)
	}
	ranges, err := annotation.RangeDiffFromRecord(rec.Ranges)
	if err != nil {
		return nil, fmt.Errorf("range annotation diff: %w", err)
	}
	return &DocDiff{patch: patch, markers: markers, rows: rows, ranges: ranges}, nil
}
