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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's used by the myers algorithm and is then translated into diff-match-patch diffs by
// textpatch.
package rvecs

import "iter"

// Make allocates result vectors for x and y. Both vectors carry one extra trailing element that is
// always false, which makes it possible to iterate over them without bounds checks.
func Make[T any](x, y []T) (rx, ry []bool) {
	r := make([]bool, (len(x) + len(y) + 2))
	rx = r[: len(x)+1 : len(x)+1]
	ry = r[len(x)+1:]
	return
}

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Elements in x and y match
	Delete           // Elements are deleted from x
	Insert           // Elements are inserted from y
)

// Run is a maximal sequence of edits with the same operation.
type Run struct {
	Op     Op
	S0, S1 int // Start and end of the run in x.
	T0, T1 int // Start and end of the run in y.
}

// Runs iterates over the runs described by rx and ry. Within a change, deletions are reported
// before insertions.
func Runs(rx, ry []bool) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		n, m := len(rx)-1, len(ry)-1
		for s, t := 0, 0; s < n || t < m; {
			if s0 := s; rx[s] {
				for s < n && rx[s] {
					s++
				}
				if !yield(Run{Delete, s0, s, t, t}) {
					return
				}
			}
			if t0 := t; ry[t] {
				for t < m && ry[t] {
					t++
				}
				if !yield(Run{Insert, s, s, t0, t}) {
					return
				}
			}
			if s0, t0 := s, t; s < n && t < m && !rx[s] && !ry[t] {
				for s < n && t < m && !rx[s] && !ry[t] {
					s++
					t++
				}
				if !yield(Run{Match, s0, s, t0, t}) {
					return
				}
			}
		}
	}
}
