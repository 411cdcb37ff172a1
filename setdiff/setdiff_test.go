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

package setdiff

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tag string

func (t tag) Key() string    { return string(t) }
func (t tag) Record() string { return string(t) }

func decodeTag(s string) (tag, error) {
	if s == "" {
		return "", errors.New("empty tag")
	}
	return tag(s), nil
}

func set(items ...tag) *Set[tag] { return NewSet(items...) }

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		old, new      *Set[tag]
		added, remove []tag
		absent        bool
		applied       *Set[tag] // result of applying the diff to old, if different from new
	}{
		{
			name:   "absent-new",
			old:    set("a"),
			new:    nil,
			absent: true,
		},
		{
			name:  "absent-old",
			old:   nil,
			new:   set("b", "a"),
			added: []tag{"a", "b"},
		},
		{
			name:    "both-absent",
			old:     nil,
			new:     nil,
			applied: set(),
		},
		{
			name: "both-empty",
			old:  set(),
			new:  set(),
		},
		{
			name:   "to-empty",
			old:    set("x", "y"),
			new:    set(),
			remove: []tag{"x", "y"},
		},
		{
			name:   "mixed",
			old:    set("a", "b", "c"),
			new:    set("b", "d", "c", "e"),
			added:  []tag{"d", "e"},
			remove: []tag{"a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(tt.old, tt.new)
			if tt.absent {
				if d != nil {
					t.Fatalf("Compute(...) = %v, want absent diff", d)
				}
				return
			}
			if d == nil {
				t.Fatalf("Compute(...) = nil, want present diff")
			}
			if diff := cmp.Diff(tt.added, d.Added()); diff != "" {
				t.Errorf("Added() differs [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.remove, d.Removed()); diff != "" {
				t.Errorf("Removed() differs [-want,+got]:\n%s", diff)
			}
			want := tt.new
			if tt.applied != nil {
				want = tt.applied
			}
			if got := d.Apply(tt.old); !got.Equal(want) {
				t.Errorf("Apply(old) = %v, want %v", got.Sorted(), want.Sorted())
			}
		})
	}
}

func TestLawsRandom(t *testing.T) {
	rng := rand.New(rand.NewChaCha8([32]byte{'s', 'e', 't'}))
	randSet := func() *Set[tag] {
		var items []tag
		for range rng.IntN(10) {
			items = append(items, tag(fmt.Sprint(rng.IntN(15))))
		}
		return NewSet(items...)
	}
	for range 500 {
		a, b := randSet(), randSet()
		d := Compute(a, b)
		if got := d.Apply(a); !got.Equal(b) {
			t.Fatalf("Compute(%v, %v).Apply(a) = %v", a.Sorted(), b.Sorted(), got.Sorted())
		}
		if got := Compute(a, a); !got.IsIdentity() {
			t.Fatalf("Compute(a, a) = %v, want identity", got)
		}
		for _, v := range d.Added() {
			if a.Contains(v) || !d.Apply(a).Contains(v) {
				t.Fatalf("added item %q already in old set or missing from result", v)
			}
		}
		for _, v := range d.Removed() {
			if b.Contains(v) {
				t.Fatalf("removed item %q still in new set", v)
			}
		}
	}
}

func TestApplyAbsent(t *testing.T) {
	old := set("a")
	var d *Diff[tag]
	if got := d.Apply(old); got != old {
		t.Errorf("absent diff Apply(old) = %p, want the old set %p", got, old)
	}
	if got := d.Apply(nil); got != nil {
		t.Errorf("absent diff Apply(nil) = %v, want nil", got)
	}
	if !d.IsIdentity() {
		t.Errorf("absent diff is not an identity")
	}
}

func TestApplyEmptyToAbsent(t *testing.T) {
	d := New[tag](nil, nil)
	got := d.Apply(nil)
	if got == nil || got.Len() != 0 {
		t.Errorf("empty diff Apply(nil) = %v, want empty set", got)
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	old := set("a", "b")
	d := Compute(old, set("b", "c"))
	_ = d.Apply(old)
	if !old.Equal(set("a", "b")) {
		t.Errorf("Apply mutated old set: %v", old.Sorted())
	}
}

func TestSetEqual(t *testing.T) {
	tests := []struct {
		a, b *Set[tag]
		want bool
	}{
		{nil, nil, true},
		{nil, set(), false},
		{set(), nil, false},
		{set(), set(), true},
		{set("a", "b"), set("b", "a"), true},
		{set("a"), set("b"), false},
		{set("a"), set("a", "b"), false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a.Sorted(), tt.b.Sorted(), got, tt.want)
		}
	}
}

func TestRecord(t *testing.T) {
	d := Compute(set("b", "a", "z"), set("c", "z", "d"))
	rec := ToRecord[tag, string](d)
	want := &Record[string]{Added: []string{"c", "d"}, Removed: []string{"a", "b"}}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("ToRecord(...) differs [-want,+got]:\n%s", diff)
	}

	back, err := FromRecord(rec, decodeTag)
	if err != nil {
		t.Fatalf("FromRecord(...) failed: %v", err)
	}
	if diff := cmp.Diff(d.Added(), back.Added()); diff != "" {
		t.Errorf("FromRecord(...).Added() differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(d.Removed(), back.Removed()); diff != "" {
		t.Errorf("FromRecord(...).Removed() differs [-want,+got]:\n%s", diff)
	}
}

func TestRecordEmptyAndAbsent(t *testing.T) {
	rec := ToRecord[tag, string](Compute(set(), set()))
	if rec == nil || rec.Added == nil || rec.Removed == nil {
		t.Errorf("ToRecord(empty diff) = %+v, want non-nil empty slices", rec)
	}
	if rec := ToRecord[tag, string](nil); rec != nil {
		t.Errorf("ToRecord(nil) = %+v, want nil", rec)
	}

	d, err := FromRecord(nil, decodeTag)
	if err != nil || d != nil {
		t.Errorf("FromRecord(nil) = %v, %v, want nil, nil", d, err)
	}
	d, err = FromRecord(&Record[string]{}, decodeTag)
	if err != nil || d == nil || !d.IsIdentity() {
		t.Errorf("FromRecord(empty) = %v, %v, want present identity diff", d, err)
	}
}

func TestFromRecordError(t *testing.T) {
	_, err := FromRecord(&Record[string]{Added: []string{"a"}, Removed: []string{""}}, decodeTag)
	if err == nil {
		t.Errorf("FromRecord(...) succeeded, want error")
	}
}
