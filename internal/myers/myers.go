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

// Package myers contains the linear space variant of Myers' algorithm (section 4.2 of the paper)
// that textpatch uses to compute character diffs.
//
// The search runs on the edit graph of x and y: a step right deletes an element of x, a step down
// inserts an element of y, and a diagonal step matches two equal elements. A minimal diff is a
// path from (0,0) to (N,M) with the fewest non-diagonal steps. The algorithm searches forwards from
// (0,0) and backwards from (N,M) at the same time until the two furthest reaching paths overlap,
// which yields a middle sequence of diagonals that splits the problem in two. Both halves are then
// solved recursively.
//
// Two heuristics bound the runtime for large inputs with many differences unless a minimal diff is
// requested:
//
//   - GOOD_DIAGONAL: once the cost exceeds a limit, accept a long diagonal that is close to the
//     middle as the split point.
//   - TOO_EXPENSIVE (Paul Eggert): once the cost exceeds roughly the square root of the input
//     size, pick the furthest reaching path found so far as the split point.
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers

import (
	"math"

	"znkr.io/docsync/internal/config"
	"znkr.io/docsync/internal/rvecs"
)

// minCostLimit is a lower bound for the TOO_EXPENSIVE heuristic.
const minCostLimit = 4096

// Constants for the GOOD_DIAGONAL heuristic.
const (
	goodDiagMinLen    = 20  // Minimal length of a diagonal for it to be considered.
	goodDiagCostLimit = 256 // The heuristic is only applied if the cost exceeds this number.
	goodDiagMagic     = 4   // Magic number for diagonal selection.
)

// Diff compares x and y and returns result vectors: rx[s] is true if x[s] is deleted and ry[t] is
// true if y[t] is inserted. Both vectors have one extra trailing element that is always false.
func Diff[T comparable](x, y []T, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	smin, tmin := 0, 0
	smax, tmax := len(x), len(y)
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	switch {
	case smin == smax && tmin == tmax:
		return rx, ry
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return rx, ry
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return rx, ry
	}

	// Elements that only occur on one side are always deletions or insertions. Drop them and run
	// the search on dense integer IDs of the remaining elements; xidx and yidx map back into x and
	// y. For text this removes every character that was only typed or only removed.
	ids := make(map[T]int, smax-smin)
	seen := make([]uint8, 0, smax-smin) // 1: seen in x, 3: seen in x and y
	for _, e := range x[smin:smax] {
		if _, ok := ids[e]; !ok {
			ids[e] = len(seen)
			seen = append(seen, 1)
		}
	}
	for _, e := range y[tmin:tmax] {
		if id, ok := ids[e]; ok {
			seen[id] = 3
		}
	}
	var x0, y0, xidx, yidx []int
	for s := smin; s < smax; s++ {
		if id := ids[x[s]]; seen[id] == 3 {
			x0 = append(x0, id)
			xidx = append(xidx, s)
		} else {
			rx[s] = true
		}
	}
	for t := tmin; t < tmax; t++ {
		if id, ok := ids[y[t]]; ok && seen[id] == 3 {
			y0 = append(y0, id)
			yidx = append(yidx, t)
		} else {
			ry[t] = true
		}
	}

	var m myers[int]
	m.xidx, m.yidx = xidx, yidx
	m.rx, m.ry = rx, ry
	smin0, smax0, tmin0, tmax0 := m.init(x0, y0)
	m.compare(smin0, smax0, tmin0, tmax0, cfg.Mode == config.ModeMinimal)
	return rx, ry
}

type myers[T comparable] struct {
	x, y []T

	// Forward and backward v-arrays. v[v0+k] holds the s-coordinate of the furthest reaching
	// endpoint of a d-path on diagonal k; t = s - k.
	vf, vb []int
	v0     int

	// Cost limit for the TOO_EXPENSIVE heuristic.
	costLimit int

	// Map s and t to indices into the result vectors.
	xidx, yidx []int

	rx, ry []bool
}

func (m *myers[T]) init(x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3 // +1 for the middle, +2 for the borders
	buf := make([]int, 2*vlen)
	m.x, m.y = x, y
	m.vf, m.vb = buf[:vlen], buf[vlen:]
	m.v0 = diagonals + 1

	// Approximate square root of the number of diagonals, bounded by minCostLimit.
	costLimit := 1
	for i := diagonals; i != 0; i >>= 2 {
		costLimit <<= 1
	}
	m.costLimit = max(minCostLimit, costLimit)

	if m.xidx == nil || m.yidx == nil {
		idx := make([]int, max(len(x), len(y)))
		for i := range idx {
			idx[i] = i
		}
		m.xidx, m.yidx = idx[:len(x)], idx[:len(y)]
	}
	if m.rx == nil || m.ry == nil {
		m.rx, m.ry = rvecs.Make(x, y)
	}
	return
}

// compare finds a d-path from (smin, tmin) to (smax, tmax) and records it in the result vectors.
//
// x[smin:smax] and y[tmin:tmax] must not have a common prefix or suffix.
func (m *myers[T]) compare(smin, smax, tmin, tmax int, optimal bool) {
	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			m.ry[m.yidx[t]] = true
		}
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			m.rx[m.xidx[s]] = true
		}
	default:
		// The middle diagonal (s0, t0) to (s1, t1) splits the rectangle into two smaller ones that
		// again have no common prefix or suffix.
		s0, s1, t0, t1, opt0, opt1 := m.split(smin, smax, tmin, tmax, optimal)
		m.compare(smin, s0, tmin, t0, opt0)
		m.compare(s1, smax, t1, tmax, opt1)
	}
}

// split finds the endpoints of a, potentially empty, sequence of diagonals in the middle of a path
// from (smin, tmin) to (smax, tmax).
//
// x[smin:smax] and y[tmin:tmax] must not have a common prefix or suffix and may not both be empty.
func (m *myers[T]) split(smin, smax, tmin, tmax int, optimal bool) (s0, s1, t0, t1 int, opt0, opt1 bool) {
	N, M := smax-smin, tmax-tmin
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	kmin, kmax := smin-tmax, smax-tmin

	// Forward and backward searches are centered on different diagonals so that both use the same
	// k numbering and overlaps can be checked without conversion.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// The parity of the shortest path length equals the parity of N-M.
	odd := (N-M)%2 != 0

	// There is no 0-path because there's no common prefix, start at d=1.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax
	for d := 1; ; d++ {
		longestDiag := 0

		// Grow the diagonal range by one in each direction while inside the grid, shrink it
		// otherwise. The sentinels let the k-loop treat the borders like any other diagonal.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1] // vertical step from k+1
			} else {
				s = vf[k0-1] + 1 // horizontal step from k-1; prefers deletions on ties
			}
			t := s - k

			s0, t0 := s, t
			for s < smax && t < tmax && x[s] == y[t] {
				s++
				t++
			}
			longestDiag = max(longestDiag, s-s0)
			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return s0, s, t0, t, true, true
			}
		}

		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			s0, t0 := s, t
			for s > smin && t > tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			longestDiag = max(longestDiag, s0-s)
			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, s0, t, t0, true, true
			}
		}

		if optimal {
			continue
		}

		// GOOD_DIAGONAL: accept a long diagonal that's not too far from a corner and from the middle
		// diagonal.
		if longestDiag >= goodDiagMinLen && d >= goodDiagCostLimit {
			if s0, s1, t0, t1, opt0, opt1, ok := m.goodDiagonal(d, smin, smax, tmin, tmax, fmin, fmax, bmin, bmax); ok {
				return s0, s1, t0, t1, opt0, opt1
			}
		}

		// TOO_EXPENSIVE: stop searching and split at the furthest reaching path found so far.
		if d >= m.costLimit {
			return m.furthest(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax)
		}
	}
}

func (m *myers[T]) goodDiagonal(d, smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (s0, s1, t0, t1 int, opt0, opt1, ok bool) {
	vf, vb, v0 := m.vf, m.vb, m.v0
	fmid, bmid := smin-tmin, smax-tmax
	best := 0
	for k := fmin; k <= fmax; k += 2 {
		k0 := k + v0
		s := vf[k0]
		t := s - k
		if s < smin || smax <= s || t < tmin || tmax <= t {
			continue
		}
		v := (s - smin) + (t - tmin) - max(fmid-d, d-fmid)
		if v <= goodDiagMagic*d || v < best {
			continue
		}
		if diag := m.forwardDiag(k); diag >= goodDiagMinLen {
			best = v
			s0, s1, t0, t1, opt0, opt1, ok = s-diag, s, t-diag, t, true, false, true
		}
	}
	for k := bmin; k <= bmax; k += 2 {
		k0 := k + v0
		s := vb[k0]
		t := s - k
		if s < smin || smax <= s || t < tmin || tmax <= t {
			continue
		}
		v := (smax - s) + (tmax - t) - max(bmid-d, d-bmid)
		if v <= goodDiagMagic*d || v < best {
			continue
		}
		if diag := m.backwardDiag(k); diag >= goodDiagMinLen {
			best = v
			s0, s1, t0, t1, opt0, opt1, ok = s, s+diag, t, t+diag, false, true, true
		}
	}
	return
}

func (m *myers[T]) furthest(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (s0, s1, t0, t1 int, opt0, opt1 bool) {
	vf, vb, v0 := m.vf, m.vb, m.v0

	// Forward endpoint that maximizes s+t.
	fbest, fbestk := math.MinInt, 0
	for k := fmin; k <= fmax; k += 2 {
		s := vf[k+v0]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && fbest < s+t {
			fbest, fbestk = s+t, k
		}
	}
	// Backward endpoint that minimizes s+t.
	bbest, bbestk := math.MaxInt, 0
	for k := bmin; k <= bmax; k += 2 {
		s := vb[k+v0]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && s+t < bbest {
			bbest, bbestk = s+t, k
		}
	}

	switch {
	case fbest != math.MinInt && (bbest == math.MaxInt || (smax+tmax)-bbest < fbest-(smin+tmin)):
		s := vf[fbestk+v0]
		t := s - fbestk
		diag := m.forwardDiag(fbestk)
		return s - diag, s, t - diag, t, true, false
	case bbest != math.MaxInt:
		s := vb[bbestk+v0]
		t := s - bbestk
		diag := m.backwardDiag(bbestk)
		return s, s + diag, t, t + diag, false, true
	default:
		panic("no best path found")
	}
}

// forwardDiag returns the number of diagonal steps at the end of the forward path on diagonal k.
// The path consists of the path on the previous diagonal, one horizontal or vertical step, and a
// possibly empty sequence of diagonals.
func (m *myers[T]) forwardDiag(k int) int {
	vf, v0 := m.vf, m.v0
	k0 := k + v0
	s := vf[k0]
	t := s - k
	pk := k - 1
	if vf[k0-1] < vf[k0+1] {
		pk = k + 1
	}
	ps := vf[pk+v0]
	pt := ps - pk
	return min(s-ps, t-pt)
}

// backwardDiag is the backward analogue of forwardDiag.
func (m *myers[T]) backwardDiag(k int) int {
	vb, v0 := m.vb, m.v0
	k0 := k + v0
	s := vb[k0]
	t := s - k
	pk := k + 1
	if vb[k0-1] < vb[k0+1] {
		pk = k - 1
	}
	ps := vb[pk+v0]
	pt := ps - pk
	return min(ps-s, pt-t)
}
