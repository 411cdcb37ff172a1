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
	"strings"

	"znkr.io/docsync/annotation"
	"znkr.io/docsync/marker"
	"znkr.io/docsync/setdiff"
	"znkr.io/docsync/textpatch"
)

// DocDiff is the difference between two documents. The marker diff and both annotation diffs can
// be absent (nil), in which case applying the DocDiff leaves that part of a document unchanged.
//
// DocDiffs are immutable and safe for concurrent use.
type DocDiff struct {
	patch   textpatch.Patch
	markers *marker.Diff
	rows    *setdiff.Diff[annotation.Row]
	ranges  *setdiff.Diff[annotation.Range]
}

// Compute returns the diff from old to new. The text patch and the marker diff are always present.
// An annotation diff is absent if the corresponding annotation set of new is absent and the one of
// old is present. If both are absent, the diff is present and empty.
//
// Markers are compared as they are. Use [Document.Edit] to move markers along with a text change
// before the new document is compared.
//
// Compute supports the same options as [textpatch.Make]. Use [textpatch.Compat] if peers compare
// patch texts with other diff-match-patch implementations.
func Compute(old, new Document, opts ...textpatch.Option) *DocDiff {
	return &DocDiff{
		patch:   textpatch.Make(old.text, new.text, opts...),
		markers: marker.Compute(old.markers, new.markers),
		rows:    setdiff.Compute(old.rows, new.rows),
		ranges:  setdiff.Compute(old.ranges, new.ranges),
	}
}

// ComputeText returns a diff that only changes the text. Markers and annotations are absent.
func ComputeText(old, new string, opts ...textpatch.Option) *DocDiff {
	return &DocDiff{patch: textpatch.Make(old, new, opts...)}
}

// FromMetadataAndAnnotations returns a diff that doesn't change the text. It's used when only
// markers or range annotations changed. The row annotation diff is present and empty.
func FromMetadataAndAnnotations(markers *marker.Diff, ranges *setdiff.Diff[annotation.Range]) *DocDiff {
	return &DocDiff{
		markers: markers,
		rows:    setdiff.New[annotation.Row](nil, nil),
		ranges:  ranges,
	}
}

// Patch returns the text patch.
func (d *DocDiff) Patch() textpatch.Patch { return d.patch }

// Markers returns the marker diff, nil if it is absent.
func (d *DocDiff) Markers() *marker.Diff { return d.markers }

// Rows returns the row annotation diff, nil if it is absent.
func (d *DocDiff) Rows() *setdiff.Diff[annotation.Row] { return d.rows }

// Ranges returns the range annotation diff, nil if it is absent.
func (d *DocDiff) Ranges() *setdiff.Diff[annotation.Range] { return d.ranges }

// Apply applies the diff to doc and returns the resulting document. The text patch is applied
// first, hunks that can't be located are skipped. Then the marker diff and each annotation diff are
// applied if present. Absent parts keep the corresponding part of doc; an absent annotation diff
// returns the very same set as doc.
//
// Apply supports the same options as [textpatch.Apply].
func (d *DocDiff) Apply(doc Document, opts ...textpatch.Option) Document {
	text, _ := textpatch.Apply(d.patch, doc.text, opts...)
	return d.applyMetadata(doc, text)
}

// ApplyStrict is like [DocDiff.Apply], but returns a [*textpatch.ApplyError] if any hunk of the
// text patch could not be applied. The best-effort document is returned in either case.
func (d *DocDiff) ApplyStrict(doc Document, opts ...textpatch.Option) (Document, error) {
	text, err := textpatch.ApplyStrict(d.patch, doc.text, opts...)
	return d.applyMetadata(doc, text), err
}

func (d *DocDiff) applyMetadata(doc Document, text string) Document {
	return Document{
		text:    text,
		markers: d.markers.Apply(doc.markers),
		rows:    d.rows.Apply(doc.rows),
		ranges:  d.ranges.Apply(doc.ranges),
	}
}

// ApplyText applies the text patch to text.
//
// ApplyText supports the same options as [textpatch.Apply].
func (d *DocDiff) ApplyText(text string, opts ...textpatch.Option) string {
	out, _ := textpatch.Apply(d.patch, text, opts...)
	return out
}

// IsIdentity returns true if the text patch is empty and the marker diff is absent or an identity.
//
// The annotation diffs are not considered: a diff that only changes annotations reports true.
func (d *DocDiff) IsIdentity() bool {
	return d.patch.IsEmpty() && d.markers.IsIdentity()
}

func (d *DocDiff) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "patch: %d hunks\n", d.patch.Len())
	sb.WriteString(d.patch.String())
	fmt.Fprintf(&sb, "markers: %v\n", d.markers)
	fmt.Fprintf(&sb, "rows: %s\n", setDiffString(d.rows))
	fmt.Fprintf(&sb, "ranges: %s\n", setDiffString(d.ranges))
	return sb.String()
}

func setDiffString[T setdiff.Keyed](d *setdiff.Diff[T]) string {
	if d == nil {
		return "<absent>"
	}
	return fmt.Sprintf("added=%v removed=%v", d.Added(), d.Removed())
}
