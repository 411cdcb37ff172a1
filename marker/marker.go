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

// Package marker provides positional markers and the diff between two sets of markers.
//
// Markers are identified by their ID. A [Diff] classifies every ID as added, removed, or changed;
// markers that are equal in both versions are not part of the diff. Markers aren't moved by a
// diff. When text changes, callers use [Relocate] to move markers according to their
// [OnChange] policy before computing the diff.
package marker

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"znkr.io/docsync/textpatch"
	"znkr.io/docsync/textpos"
)

// Kind describes how a marker is rendered.
type Kind int

//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind,OnChange -linecomment

const (
	KindLine Kind = iota // line
	KindText             // text
)

// OnChange describes what happens to a marker when the text changes.
type OnChange int

const (
	Keep   OnChange = iota // keep
	Adjust                 // adjust
	Remove                 // remove
)

// ParseKind parses the string form of a [Kind].
func ParseKind(s string) (Kind, error) {
	for k := KindLine; k <= KindText; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown marker kind %q", s)
}

// ParseOnChange parses the string form of an [OnChange] policy.
func ParseOnChange(s string) (OnChange, error) {
	for c := Keep; c <= Remove; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown marker policy %q", s)
}

// Marker is a decorated range of text. Markers are compared by value.
//
// Range is expected to be normalized. [New] and [Marker.WithRange] normalize it, and
// [Marker.Record] sends the range of a backwards marker literal in normalized form.
type Marker struct {
	ID       string
	Range    textpos.Range
	CSSClass string
	Kind     Kind
	InFront  bool
	OnChange OnChange
}

// New returns a marker. A backwards range is normalized.
func New(id string, r textpos.Range, cssClass string, kind Kind, inFront bool, onChange OnChange) Marker {
	return Marker{
		ID:       id,
		Range:    r.Normalize(),
		CSSClass: cssClass,
		Kind:     kind,
		InFront:  inFront,
		OnChange: onChange,
	}
}

// WithRange returns a copy of m moved to r.
func (m Marker) WithRange(r textpos.Range) Marker {
	m.Range = r.Normalize()
	return m
}

func (m Marker) String() string {
	return fmt.Sprintf("%s%v;%s;%v;%v;%v", m.ID, m.Range, m.CSSClass, m.Kind, m.InFront, m.OnChange)
}

// Map returns the markers keyed by their IDs. Later markers replace earlier ones with the same ID.
func Map(markers ...Marker) map[string]Marker {
	out := make(map[string]Marker, len(markers))
	for _, m := range markers {
		out[m.ID] = m
	}
	return out
}

// Sorted returns the markers in a map ordered by ID.
func Sorted(markers map[string]Marker) []Marker {
	out := make([]Marker, 0, len(markers))
	for _, id := range slices.Sorted(maps.Keys(markers)) {
		out = append(out, markers[id])
	}
	return out
}

// Diff is the difference between two marker maps. The nil *Diff is the absent diff; it leaves
// every marker map unchanged.
type Diff struct {
	added   []Marker // ordered by ID
	removed []string // ordered
	changed []Marker // ordered by ID
}

// Compute returns the diff from old to new. Markers are matched by ID: IDs only in new are added,
// IDs only in old are removed, and IDs in both with unequal markers are changed. The new marker is
// stored as is; its range isn't derived from the old one.
//
// Both maps are keyed by marker ID. A nil map is an empty map.
func Compute(old, new map[string]Marker) *Diff {
	d := &Diff{}
	for _, id := range slices.Sorted(maps.Keys(new)) {
		nm := new[id]
		om, ok := old[id]
		switch {
		case !ok:
			d.added = append(d.added, nm)
		case om != nm:
			d.changed = append(d.changed, nm)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(old)) {
		if _, ok := new[id]; !ok {
			d.removed = append(d.removed, id)
		}
	}
	return d
}

// NewDiff returns a diff with the given changes.
func NewDiff(added []Marker, removed []string, changed []Marker) *Diff {
	byID := func(a, b Marker) int { return strings.Compare(a.ID, b.ID) }
	return &Diff{
		added:   slices.SortedFunc(slices.Values(added), byID),
		removed: slices.Sorted(slices.Values(removed)),
		changed: slices.SortedFunc(slices.Values(changed), byID),
	}
}

// Apply returns a new map that starts from old, drops all removed IDs, and adds or replaces all
// added and changed markers. The absent diff returns old itself. old is never modified.
func (d *Diff) Apply(old map[string]Marker) map[string]Marker {
	if d == nil {
		return old
	}
	out := maps.Clone(old)
	if out == nil {
		out = make(map[string]Marker, len(d.added)+len(d.changed))
	}
	for _, id := range d.removed {
		delete(out, id)
	}
	for _, m := range d.added {
		out[m.ID] = m
	}
	for _, m := range d.changed {
		out[m.ID] = m
	}
	return out
}

// IsIdentity returns true if nothing is added, removed, or changed. This includes the absent diff.
func (d *Diff) IsIdentity() bool {
	return d == nil || len(d.added) == 0 && len(d.removed) == 0 && len(d.changed) == 0
}

// Added returns the added markers ordered by ID.
func (d *Diff) Added() []Marker {
	if d == nil {
		return nil
	}
	return slices.Clone(d.added)
}

// Removed returns the removed IDs in order.
func (d *Diff) Removed() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.removed)
}

// Changed returns the new versions of changed markers ordered by ID.
func (d *Diff) Changed() []Marker {
	if d == nil {
		return nil
	}
	return slices.Clone(d.changed)
}

func (d *Diff) String() string {
	if d == nil {
		return "<absent>"
	}
	return fmt.Sprintf("added=%v removed=%v changed=%v", d.added, d.removed, d.changed)
}

// Relocate returns markers moved along the edit described by m, following each marker's policy:
// [Keep] markers stay where they are, [Adjust] markers are translated, and [Remove] markers are
// dropped if the edit touches them and translated otherwise. markers is never modified.
func Relocate(markers map[string]Marker, m *textpatch.Mapper) map[string]Marker {
	out := make(map[string]Marker, len(markers))
	for id, mk := range markers {
		switch mk.OnChange {
		case Keep:
			out[id] = mk
		case Adjust:
			out[id] = mk.WithRange(m.Range(mk.Range))
		case Remove:
			if m.Touched(mk.Range) {
				continue
			}
			out[id] = mk.WithRange(m.Range(mk.Range))
		}
	}
	return out
}
