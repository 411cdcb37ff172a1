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

// Package linediff compares texts line by line and renders the result in unified format. It's used
// to preview what applying a document diff does to a document.
package linediff

import (
	"fmt"
	"strings"

	"znkr.io/docsync/internal/config"
	"znkr.io/docsync/internal/myers"
	"znkr.io/docsync/internal/rvecs"
)

const missingNewline = "\n\\ No newline at end of file\n"

// Unified compares the lines in x and y and returns the changes necessary to convert from one to
// the other in unified format, with context lines of unchanged text around each change.
func Unified(x, y string, context int) string {
	xlines, ylines := split(x), split(y)
	rx, ry := myers.Diff(xlines, ylines, config.Default)

	var b strings.Builder
	for _, h := range hunks(rx, ry, max(0, context)) {
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", span(h.s0, h.s1), span(h.t0, h.t1))
		for s, t := h.s0, h.t0; s < h.s1 || t < h.t1; {
			for s < h.s1 && rx[s] {
				b.WriteString("-" + xlines[s])
				s++
			}
			for t < h.t1 && ry[t] {
				b.WriteString("+" + ylines[t])
				t++
			}
			for s < h.s1 && t < h.t1 && !rx[s] && !ry[t] {
				b.WriteString(" " + xlines[s])
				s++
				t++
			}
		}
	}
	return b.String()
}

// split splits s into lines that keep their line break. A missing line break at the end is marked
// the way diff and patch expect it.
func split(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += missingNewline
	return lines
}

// span formats a line range for a hunk header. Empty ranges refer to the line before them.
func span(from, to int) string {
	if from == to {
		return fmt.Sprintf("%d,0", from)
	}
	return fmt.Sprintf("%d,%d", from+1, to-from)
}

type hunk struct {
	s0, s1 int // Start and end of the hunk in x.
	t0, t1 int // Start and end of the hunk in y.
}

// hunks groups the changes in rx and ry into hunks. Changes that are at most 2*context lines apart
// share a hunk.
func hunks(rx, ry []bool, context int) []hunk {
	n, m := len(rx)-1, len(ry)-1
	var hs []hunk
	for r := range rvecs.Runs(rx, ry) {
		if r.Op == rvecs.Match {
			continue
		}
		h := hunk{
			s0: max(0, r.S0-context),
			s1: min(n, r.S1+context),
			t0: max(0, r.T0-context),
			t1: min(m, r.T1+context),
		}
		if len(hs) > 0 && hs[len(hs)-1].s1 >= h.s0 {
			last := &hs[len(hs)-1]
			last.s1 = max(last.s1, h.s1)
			last.t1 = max(last.t1, h.t1)
			continue
		}
		hs = append(hs, h)
	}
	return hs
}
