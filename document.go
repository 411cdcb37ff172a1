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
	"maps"

	"znkr.io/docsync/annotation"
	"znkr.io/docsync/marker"
	"znkr.io/docsync/setdiff"
	"znkr.io/docsync/textpatch"
)

// Document is an immutable snapshot of a document. The zero value is an empty document without
// markers and with absent annotation sets.
type Document struct {
	text    string
	markers map[string]marker.Marker
	rows    *setdiff.Set[annotation.Row]
	ranges  *setdiff.Set[annotation.Range]
}

// NewDocument returns a document. The markers map is keyed by marker ID and copied. A nil
// annotation set is absent.
func NewDocument(text string, markers map[string]marker.Marker, rows *setdiff.Set[annotation.Row], ranges *setdiff.Set[annotation.Range]) Document {
	return Document{
		text:    text,
		markers: maps.Clone(markers),
		rows:    rows,
		ranges:  ranges,
	}
}

// Text returns the text of the document.
func (d Document) Text() string { return d.text }

// Markers returns a copy of the markers keyed by ID.
func (d Document) Markers() map[string]marker.Marker { return maps.Clone(d.markers) }

// Marker returns the marker with the given ID.
func (d Document) Marker(id string) (marker.Marker, bool) {
	m, ok := d.markers[id]
	return m, ok
}

// Rows returns the row annotations, nil if they are absent.
func (d Document) Rows() *setdiff.Set[annotation.Row] { return d.rows }

// Ranges returns the range annotations, nil if they are absent.
func (d Document) Ranges() *setdiff.Set[annotation.Range] { return d.ranges }

// WithText returns a copy of d with a different text. Markers are left as they are, see
// [Document.Edit] to move them with the text.
func (d Document) WithText(text string) Document {
	d.text = text
	return d
}

// WithMarkers returns a copy of d with different markers.
func (d Document) WithMarkers(markers map[string]marker.Marker) Document {
	d.markers = maps.Clone(markers)
	return d
}

// WithRows returns a copy of d with different row annotations.
func (d Document) WithRows(rows *setdiff.Set[annotation.Row]) Document {
	d.rows = rows
	return d
}

// WithRanges returns a copy of d with different range annotations.
func (d Document) WithRanges(ranges *setdiff.Set[annotation.Range]) Document {
	d.ranges = ranges
	return d
}

// Edit returns a copy of d with the new text and markers relocated according to their policies,
// see [marker.Relocate]. Annotations are not moved.
//
// Edit supports the same options as [textpatch.Make].
func (d Document) Edit(text string, opts ...textpatch.Option) Document {
	p := textpatch.Make(d.text, text, opts...)
	d.markers = marker.Relocate(d.markers, p.Mapper(d.text))
	d.text = text
	return d
}
