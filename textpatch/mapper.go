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

package textpatch

import (
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/docsync/internal/config"
	"znkr.io/docsync/textpos"
)

// Mapper translates positions in a source text to positions in the text that results from applying
// a patch to it.
//
// Insertions at or before a position shift it. A position inside a deleted span collapses to the
// point of the deletion.
type Mapper struct {
	diffs    []diffmatchpatch.Diff
	src, dst *textpos.Index
}

// Mapper returns a position mapper from src to the result of applying p to src.
//
// If p was created by [Make] from src, the mapping follows the exact edits of the patch. Otherwise,
// the patch is applied to src and the mapping follows a diff between src and the result.
//
// Mapper supports the same options as [Apply].
func (p Patch) Mapper(src string, opts ...Option) *Mapper {
	cfg := config.FromOptions(opts, config.ApplyFlags)
	diffs := p.diffs
	if !p.made || src != p.src {
		dst, _ := apply(p, src, cfg)
		diffs = runeDiffs(src, dst, config.Default)
	}
	var dst []byte
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffDelete {
			dst = append(dst, d.Text...)
		}
	}
	return &Mapper{
		diffs: diffs,
		src:   textpos.NewIndex(src),
		dst:   textpos.NewIndex(string(dst)),
	}
}

// Text returns the patched text.
func (m *Mapper) Text() string { return m.dst.Text() }

// Offset translates the byte offset off in the source text to a byte offset in the patched text.
func (m *Mapper) Offset(off int) int {
	off = max(0, min(off, m.src.Len()))
	pos1, pos2 := 0, 0 // offsets in the source and the patched text
	for _, d := range m.diffs {
		n := len(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			pos2 += n
		case diffmatchpatch.DiffDelete:
			if off < pos1+n {
				// Inside of the deletion.
				return pos2
			}
			pos1 += n
		case diffmatchpatch.DiffEqual:
			if off < pos1+n {
				return pos2 + off - pos1
			}
			pos1 += n
			pos2 += n
		}
	}
	return pos2 + off - pos1
}

// Pos translates a position in the source text to a position in the patched text. Positions
// outside of the source text are clamped first.
func (m *Mapper) Pos(p textpos.Pos) textpos.Pos {
	return m.dst.Pos(m.Offset(m.src.Offset(p)))
}

// Range translates both ends of r. The result is normalized.
func (m *Mapper) Range(r textpos.Range) textpos.Range {
	return textpos.Range{Start: m.Pos(r.Start), End: m.Pos(r.End)}.Normalize()
}

// Touched returns true if the edit changes text inside of r. For a non-empty range, that's any
// deletion overlapping it or any insertion strictly inside of it. An empty range is touched if the
// character right after it is deleted.
func (m *Mapper) Touched(r textpos.Range) bool {
	r = r.Normalize()
	s, e := m.src.Offset(r.Start), m.src.Offset(r.End)
	pos := 0
	for _, d := range m.diffs {
		n := len(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			if s < pos && pos < e {
				return true
			}
		case diffmatchpatch.DiffDelete:
			if s == e && pos <= s && s < pos+n {
				return true
			}
			if pos < e && s < pos+n {
				return true
			}
			pos += n
		case diffmatchpatch.DiffEqual:
			pos += n
		}
		if pos > e {
			break
		}
	}
	return false
}

// Translate translates pos in src to the corresponding position after applying p to src.
func Translate(p Patch, src string, pos textpos.Pos) textpos.Pos {
	return p.Mapper(src).Pos(pos)
}
