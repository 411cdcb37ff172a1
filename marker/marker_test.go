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
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/docsync/textpatch"
	"znkr.io/docsync/textpos"
)

func mk(id string, sr, sc, er, ec int, onChange OnChange) Marker {
	return New(id, textpos.NewRange(sr, sc, er, ec), "ace_"+id, KindText, false, onChange)
}

func TestNewNormalizes(t *testing.T) {
	m := New("a", textpos.Range{Start: textpos.Pos{Row: 2}, End: textpos.Pos{Row: 1}}, "c", KindLine, true, Keep)
	if m.Range.IsBackwards() {
		t.Errorf("New(...) kept backwards range %v", m.Range)
	}
}

func TestCompute(t *testing.T) {
	a := mk("a", 0, 0, 0, 5, Keep)
	b := mk("b", 1, 0, 1, 2, Adjust)
	b2 := b.WithRange(textpos.NewRange(1, 1, 1, 3))
	c := mk("c", 2, 0, 2, 1, Remove)
	d := mk("d", 3, 0, 3, 1, Keep)

	old := Map(a, b, c)
	new := Map(a, b2, d)
	diff := Compute(old, new)

	if got, want := diff.Added(), []Marker{d}; !cmp.Equal(want, got) {
		t.Errorf("Added() = %v, want %v", got, want)
	}
	if got, want := diff.Removed(), []string{"c"}; !cmp.Equal(want, got) {
		t.Errorf("Removed() = %v, want %v", got, want)
	}
	if got, want := diff.Changed(), []Marker{b2}; !cmp.Equal(want, got) {
		t.Errorf("Changed() = %v, want %v", got, want)
	}
	if diff.IsIdentity() {
		t.Errorf("IsIdentity() = true for a non-empty diff")
	}

	got := diff.Apply(old)
	if d := cmp.Diff(new, got); d != "" {
		t.Errorf("Apply(old) differs [-want,+got]:\n%s", d)
	}
	if d := cmp.Diff(Map(a, b, c), old); d != "" {
		t.Errorf("Apply modified old [-want,+got]:\n%s", d)
	}
}

func TestComputeIdentity(t *testing.T) {
	ms := Map(mk("a", 0, 0, 0, 1, Keep), mk("b", 0, 1, 0, 2, Adjust))
	d := Compute(ms, Map(Sorted(ms)...))
	if !d.IsIdentity() {
		t.Errorf("Compute(x, x) = %v, want identity", d)
	}
	if d == nil {
		t.Errorf("Compute(x, x) = nil, want present diff")
	}

	var absent *Diff
	if !absent.IsIdentity() {
		t.Errorf("absent diff is not an identity")
	}
	if got := absent.Apply(ms); !cmp.Equal(ms, got) {
		t.Errorf("absent diff Apply(...) = %v, want %v", got, ms)
	}
}

func TestComputeNil(t *testing.T) {
	a := mk("a", 0, 0, 0, 1, Keep)
	d := Compute(nil, Map(a))
	if got := d.Apply(nil); !cmp.Equal(Map(a), got) {
		t.Errorf("Apply(nil) = %v, want %v", got, Map(a))
	}
	d = Compute(Map(a), nil)
	if got := d.Apply(Map(a)); len(got) != 0 {
		t.Errorf("Apply(...) = %v, want empty", got)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	var added []Marker
	for _, kind := range []Kind{KindLine, KindText} {
		for _, onChange := range []OnChange{Keep, Adjust, Remove} {
			for _, inFront := range []bool{false, true} {
				id := kind.String() + "-" + onChange.String()
				if inFront {
					id += "-front"
				}
				added = append(added, New(id, textpos.NewRange(1, 2, 3, 4), "css-"+id, kind, inFront, onChange))
			}
		}
	}
	changed := []Marker{mk("z", 5, 5, 6, 0, Adjust)}
	d := NewDiff(added, []string{"gone", "also-gone"}, changed)

	rec := d.Record()
	back, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("FromRecord(...) failed: %v", err)
	}
	if diff := cmp.Diff(d.Added(), back.Added()); diff != "" {
		t.Errorf("Added() differs after round trip [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(d.Removed(), back.Removed()); diff != "" {
		t.Errorf("Removed() differs after round trip [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(d.Changed(), back.Changed()); diff != "" {
		t.Errorf("Changed() differs after round trip [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(rec, back.Record()); diff != "" {
		t.Errorf("Record() differs after round trip [-want,+got]:\n%s", diff)
	}
}

func TestMarkerRecord(t *testing.T) {
	m := New("m1", textpos.NewRange(0, 1, 2, 3), "highlight", KindLine, true, Remove)
	want := MarkerRecord{
		ID:       "m1",
		Range:    textpos.Record{StartRow: 0, StartCol: 1, EndRow: 2, EndCol: 3},
		CSSClass: "highlight",
		Kind:     "line",
		InFront:  true,
		OnChange: "remove",
	}
	if diff := cmp.Diff(want, m.Record()); diff != "" {
		t.Errorf("Record() differs [-want,+got]:\n%s", diff)
	}
}

func TestMarkerRecordNormalizes(t *testing.T) {
	backwards := Marker{ID: "b", Range: textpos.Range{Start: textpos.Pos{Row: 0, Col: 5}}, Kind: KindText, OnChange: Adjust}
	want := New("b", backwards.Range, "", KindText, false, Adjust)
	if diff := cmp.Diff(want.Record(), backwards.Record()); diff != "" {
		t.Errorf("Record() of backwards marker differs [-want,+got]:\n%s", diff)
	}

	for _, m := range []Marker{backwards, want} {
		got, err := Decode(m.Record())
		if err != nil {
			t.Fatalf("Decode(%v.Record()) failed: %v", m, err)
		}
		if got != want {
			t.Errorf("Decode(%v.Record()) = %v, want %v", m, got, want)
		}
	}
}

func TestRecordEmptyAndAbsent(t *testing.T) {
	rec := Compute(nil, nil).Record()
	if rec == nil || rec.Added == nil || rec.Removed == nil || rec.Changed == nil {
		t.Errorf("Record() of empty diff = %+v, want non-nil empty slices", rec)
	}
	var absent *Diff
	if rec := absent.Record(); rec != nil {
		t.Errorf("Record() of absent diff = %+v, want nil", rec)
	}
	if d, err := FromRecord(nil); d != nil || err != nil {
		t.Errorf("FromRecord(nil) = %v, %v, want nil, nil", d, err)
	}
}

func TestFromRecordErrors(t *testing.T) {
	good := mk("a", 0, 0, 0, 1, Keep).Record()
	badKind := good
	badKind.Kind = "box"
	badPolicy := good
	badPolicy.OnChange = "DEFAULT"

	tests := []struct {
		name string
		rec  *Record
	}{
		{"kind", &Record{Added: []MarkerRecord{badKind}}},
		{"policy", &Record{Changed: []MarkerRecord{good, badPolicy}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRecord(tt.rec); err == nil {
				t.Errorf("FromRecord(...) succeeded, want error")
			}
		})
	}
}

func TestRelocate(t *testing.T) {
	p := textpatch.Make("hello", "xx hello")
	m := p.Mapper("hello")

	markers := Map(
		mk("adjust", 0, 0, 0, 5, Adjust),
		mk("keep", 0, 0, 0, 5, Keep),
		mk("remove", 0, 1, 0, 3, Remove),
	)
	got := Relocate(markers, m)
	want := Map(
		mk("adjust", 0, 3, 0, 8, Adjust),
		mk("keep", 0, 0, 0, 5, Keep),
		mk("remove", 0, 4, 0, 6, Remove),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Relocate(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestRelocateRemove(t *testing.T) {
	p := textpatch.Make("hello world", "hello wxorld")
	m := p.Mapper("hello world")

	markers := Map(
		mk("touched", 0, 6, 0, 11, Remove),
		mk("untouched", 0, 0, 0, 5, Remove),
	)
	got := Relocate(markers, m)
	want := Map(mk("untouched", 0, 0, 0, 5, Remove))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Relocate(...) differs [-want,+got]:\n%s", diff)
	}

	p = textpatch.Make("hello world", "hello")
	got = Relocate(markers, p.Mapper("hello world"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Relocate(...) after deletion differs [-want,+got]:\n%s", diff)
	}
}
