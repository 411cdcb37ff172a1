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

package marker

import (
	"fmt"

	"znkr.io/docsync/textpos"
)

// MarkerRecord is the transport form of a [Marker].
type MarkerRecord struct {
	ID       string         `json:"id" yaml:"id" toml:"id"`
	Range    textpos.Record `json:"range" yaml:"range" toml:"range"`
	CSSClass string         `json:"cssClass" yaml:"cssClass" toml:"cssClass"`
	Kind     string         `json:"kind" yaml:"kind" toml:"kind"`
	InFront  bool           `json:"inFront" yaml:"inFront" toml:"inFront"`
	OnChange string         `json:"onChange" yaml:"onChange" toml:"onChange"`
}

// Record returns the transport form of m. The range is normalized.
func (m Marker) Record() MarkerRecord {
	return MarkerRecord{
		ID:       m.ID,
		Range:    m.Range.Normalize().Record(),
		CSSClass: m.CSSClass,
		Kind:     m.Kind.String(),
		InFront:  m.InFront,
		OnChange: m.OnChange.String(),
	}
}

// Decode decodes the transport form of a marker.
func Decode(rec MarkerRecord) (Marker, error) {
	kind, err := ParseKind(rec.Kind)
	if err != nil {
		return Marker{}, fmt.Errorf("marker %q: %w", rec.ID, err)
	}
	onChange, err := ParseOnChange(rec.OnChange)
	if err != nil {
		return Marker{}, fmt.Errorf("marker %q: %w", rec.ID, err)
	}
	return New(rec.ID, textpos.FromRecord(rec.Range), rec.CSSClass, kind, rec.InFront, onChange), nil
}

// Record is the transport form of a [Diff].
type Record struct {
	Added   []MarkerRecord `json:"added" yaml:"added" toml:"added"`
	Removed []string       `json:"removed" yaml:"removed" toml:"removed"`
	Changed []MarkerRecord `json:"changed" yaml:"changed" toml:"changed"`
}

// Record returns the transport form of d. The absent diff has no transport form and returns nil.
// The slices of the result are never nil.
func (d *Diff) Record() *Record {
	if d == nil {
		return nil
	}
	rec := &Record{
		Added:   make([]MarkerRecord, 0, len(d.added)),
		Removed: append(make([]string, 0, len(d.removed)), d.removed...),
		Changed: make([]MarkerRecord, 0, len(d.changed)),
	}
	for _, m := range d.added {
		rec.Added = append(rec.Added, m.Record())
	}
	for _, m := range d.changed {
		rec.Changed = append(rec.Changed, m.Record())
	}
	return rec
}

// FromRecord decodes a transport form created by [Diff.Record]. A nil record decodes to the
// absent diff.
func FromRecord(rec *Record) (*Diff, error) {
	if rec == nil {
		return nil, nil
	}
	decodeAll := func(rs []MarkerRecord) ([]Marker, error) {
		ms := make([]Marker, 0, len(rs))
		for _, r := range rs {
			m, err := Decode(r)
			if err != nil {
				return nil, err
			}
			ms = append(ms, m)
		}
		return ms, nil
	}
	added, err := decodeAll(rec.Added)
	if err != nil {
		return nil, fmt.Errorf("added: %w", err)
	}
	changed, err := decodeAll(rec.Changed)
	if err != nil {
		return nil, fmt.Errorf("changed: %w", err)
	}
	return NewDiff(added, rec.Removed, changed), nil
}
