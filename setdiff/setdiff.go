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

// Package setdiff reconciles two unordered collections of immutable values.
//
// A [Diff] partitions the difference between two sets into added and removed items. Items are
// compared by value; a changed item is removed and added again.
//
// A nil *Set is an absent collection and a nil *Diff is an absent diff. Both are different from
// their empty counterparts: applying an absent diff keeps the target as it is, applying an empty
// diff to an absent set produces an empty set.
package setdiff

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Keyed is implemented by values that can be stored in a [Set].
//
// Key returns a stable ordering key. Unequal values must have distinct keys.
type Keyed interface {
	comparable
	Key() string
}

// Item is implemented by values that can be reconciled with a [Diff] and sent over the wire.
type Item[R any] interface {
	Keyed
	Record() R
}

// Set is an immutable set of values. The nil *Set is the absent set; it contains nothing.
type Set[T Keyed] struct {
	m map[T]struct{}
}

// NewSet returns a set containing items. Duplicates are ignored.
func NewSet[T Keyed](items ...T) *Set[T] {
	m := make(map[T]struct{}, len(items))
	for _, v := range items {
		m[v] = struct{}{}
	}
	return &Set[T]{m: m}
}

// Len returns the number of items in the set.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Contains returns true if v is in the set.
func (s *Set[T]) Contains(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[v]
	return ok
}

// All returns an iterator over the items in the set in unspecified order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s == nil {
			return
		}
		for v := range s.m {
			if !yield(v) {
				return
			}
		}
	}
}

// Sorted returns the items of the set ordered by key.
func (s *Set[T]) Sorted() []T {
	return sortByKey(slices.Collect(s.All()))
}

// Equal returns true if both sets contain the same items. The absent set only equals itself.
func (s *Set[T]) Equal(o *Set[T]) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.m) != len(o.m) {
		return false
	}
	for v := range s.m {
		if _, ok := o.m[v]; !ok {
			return false
		}
	}
	return true
}

func sortByKey[T Keyed](items []T) []T {
	slices.SortFunc(items, func(a, b T) int { return strings.Compare(a.Key(), b.Key()) })
	return items
}

// Diff is the difference between two sets. The nil *Diff is the absent diff; it leaves every set
// unchanged.
type Diff[T Keyed] struct {
	added, removed []T // ordered by key
}

// New returns a diff that adds and removes the given items.
func New[T Keyed](added, removed []T) *Diff[T] {
	return &Diff[T]{
		added:   sortByKey(slices.Clone(added)),
		removed: sortByKey(slices.Clone(removed)),
	}
}

// Compute returns the diff from old to new: added is new minus old and removed is old minus new.
//
// If only new is absent, the diff is absent. Otherwise absent sets are treated as empty, so two
// absent sets result in an explicit empty diff.
func Compute[T Keyed](old, new *Set[T]) *Diff[T] {
	if new == nil && old != nil {
		return nil
	}
	d := &Diff[T]{}
	for v := range new.All() {
		if !old.Contains(v) {
			d.added = append(d.added, v)
		}
	}
	for v := range old.All() {
		if !new.Contains(v) {
			d.removed = append(d.removed, v)
		}
	}
	sortByKey(d.added)
	sortByKey(d.removed)
	return d
}

// Apply returns (old - removed) ∪ added. An absent diff returns old itself. An absent old set is
// treated as empty.
//
// Apply is only defined for the set the diff was computed from; this isn't checked.
func (d *Diff[T]) Apply(old *Set[T]) *Set[T] {
	if d == nil {
		return old
	}
	m := make(map[T]struct{}, old.Len()+len(d.added))
	if old != nil {
		maps.Copy(m, old.m)
	}
	for _, v := range d.removed {
		delete(m, v)
	}
	for _, v := range d.added {
		m[v] = struct{}{}
	}
	return &Set[T]{m: m}
}

// IsIdentity returns true if applying the diff doesn't change any set. This includes the absent
// diff.
func (d *Diff[T]) IsIdentity() bool {
	return d == nil || len(d.added) == 0 && len(d.removed) == 0
}

// Added returns the added items ordered by key.
func (d *Diff[T]) Added() []T {
	if d == nil {
		return nil
	}
	return slices.Clone(d.added)
}

// Removed returns the removed items ordered by key.
func (d *Diff[T]) Removed() []T {
	if d == nil {
		return nil
	}
	return slices.Clone(d.removed)
}

// Record is the transport form of a [Diff].
type Record[R any] struct {
	Added   []R `json:"added" yaml:"added" toml:"added"`
	Removed []R `json:"removed" yaml:"removed" toml:"removed"`
}

// ToRecord returns the transport form of d. The absent diff has no transport form and returns nil.
// The slices of the result are never nil.
func ToRecord[T Item[R], R any](d *Diff[T]) *Record[R] {
	if d == nil {
		return nil
	}
	rec := &Record[R]{
		Added:   make([]R, 0, len(d.added)),
		Removed: make([]R, 0, len(d.removed)),
	}
	for _, v := range d.added {
		rec.Added = append(rec.Added, v.Record())
	}
	for _, v := range d.removed {
		rec.Removed = append(rec.Removed, v.Record())
	}
	return rec
}

// FromRecord decodes a transport form created by [ToRecord]. A nil record decodes to the absent
// diff.
func FromRecord[T Keyed, R any](rec *Record[R], decode func(R) (T, error)) (*Diff[T], error) {
	if rec == nil {
		return nil, nil
	}
	decodeAll := func(rs []R) ([]T, error) {
		items := make([]T, 0, len(rs))
		for _, r := range rs {
			v, err := decode(r)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}
	added, err := decodeAll(rec.Added)
	if err != nil {
		return nil, err
	}
	removed, err := decodeAll(rec.Removed)
	if err != nil {
		return nil, err
	}
	return New(added, removed), nil
}
