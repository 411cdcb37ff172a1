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

// Package textpatch computes, applies, and serializes context-carrying text patches.
//
// A [Patch] is a list of hunks in diff-match-patch form: every hunk carries a few characters of
// unchanged context around its changes. On the exact text a patch was made from, [Apply] reproduces
// the new text losslessly. On text that has drifted since, every hunk is first tried at its
// expected location and then searched for with a bounded fuzzy match; hunks that can't be located
// are skipped and reported.
//
// Patches have a canonical text form, see [Patch.String] and [Parse], that's compatible with other
// diff-match-patch implementations. Offsets in that form are UTF-8 byte offsets.
package textpatch

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/docsync/internal/config"
	"znkr.io/docsync/internal/myers"
	"znkr.io/docsync/internal/rvecs"
)

// Patch is an ordered list of hunks that transforms one text into another. The zero value is the
// empty patch that leaves every text unchanged.
//
// Patches are immutable and safe for concurrent use.
type Patch struct {
	hunks []diffmatchpatch.Patch

	// Only set for patches created by Make. They allow exact position mapping on the source text.
	src   string
	diffs []diffmatchpatch.Diff
	made  bool
}

// Make computes a patch that transforms old into new.
//
// Make supports the options [Margin], [Minimal], [Compat], and [Timeout]. It panics if any other
// option is provided.
func Make(old, new string, opts ...Option) Patch {
	cfg := config.FromOptions(opts, config.MakeFlags)
	dmp := cfg.Engine()

	var diffs []diffmatchpatch.Diff
	switch cfg.Mode {
	case config.ModeCompat:
		diffs = dmp.DiffMain(old, new, true)
	default:
		diffs = dmp.DiffCleanupMerge(runeDiffs(old, new, cfg))
	}
	if len(diffs) > 2 {
		diffs = dmp.DiffCleanupSemantic(diffs)
		diffs = dmp.DiffCleanupEfficiency(diffs)
	}

	return Patch{
		hunks: dmp.PatchMake(old, diffs),
		src:   old,
		diffs: diffs,
		made:  true,
	}
}

// runeDiffs computes a rune level diff between old and new.
func runeDiffs(old, new string, cfg config.Config) []diffmatchpatch.Diff {
	x, y := []rune(old), []rune(new)
	rx, ry := myers.Diff(x, y, cfg)
	var diffs []diffmatchpatch.Diff
	for r := range rvecs.Runs(rx, ry) {
		switch r.Op {
		case rvecs.Match:
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: string(x[r.S0:r.S1])})
		case rvecs.Delete:
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: string(x[r.S0:r.S1])})
		case rvecs.Insert:
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: string(y[r.T0:r.T1])})
		}
	}
	return diffs
}

// IsEmpty returns true if the patch has no hunks.
func (p Patch) IsEmpty() bool { return len(p.hunks) == 0 }

// Len returns the number of hunks in the patch.
func (p Patch) Len() int { return len(p.hunks) }

// String returns the canonical text form of the patch. The empty patch is the empty string.
func (p Patch) String() string {
	if len(p.hunks) == 0 {
		return ""
	}
	return diffmatchpatch.New().PatchToText(p.hunks)
}

// ParseError is returned by [Parse] for malformed patch text.
type ParseError struct {
	Text string // offending patch text, possibly truncated
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("textpatch: malformed patch %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const maxErrorText = 40

// Parse parses the canonical text form of a patch as produced by [Patch.String]. The empty string
// parses to the empty patch.
func Parse(s string) (Patch, error) {
	if s == "" {
		return Patch{}, nil
	}
	hunks, err := diffmatchpatch.New().PatchFromText(s)
	if err != nil {
		return Patch{}, &ParseError{Text: firstLine(s), Err: err}
	}
	return Patch{hunks: hunks}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > maxErrorText {
		s = s[:maxErrorText] + "..."
	}
	return s
}

// Apply applies the patch to text. It returns the patched text and, for every hunk, whether it
// could be applied. Hunks that can't be located in text are skipped. Apply never fails.
//
// Large hunks are split before they are applied, the result therefore can have more entries than
// [Patch.Len].
//
// Apply supports the options [Margin], [MatchThreshold], [MatchDistance], and [DeleteThreshold].
// It panics if any other option is provided.
func Apply(p Patch, text string, opts ...Option) (string, []bool) {
	cfg := config.FromOptions(opts, config.ApplyFlags)
	return apply(p, text, cfg)
}

func apply(p Patch, text string, cfg config.Config) (string, []bool) {
	if len(p.hunks) == 0 {
		return text, nil
	}
	// PatchApply works on a deep copy of the hunks.
	return cfg.Engine().PatchApply(p.hunks, text)
}

// ApplyError is returned by [ApplyStrict] if at least one hunk could not be applied.
type ApplyError struct {
	Failed []int // indices of the hunks that could not be applied
	Hunks  int   // number of hunks that were attempted
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("textpatch: %d of %d hunks did not apply (hunks %v)", len(e.Failed), e.Hunks, e.Failed)
}

// ApplyStrict is like [Apply], but returns an [*ApplyError] if any hunk could not be applied. The
// best-effort result is returned in either case.
func ApplyStrict(p Patch, text string, opts ...Option) (string, error) {
	cfg := config.FromOptions(opts, config.ApplyFlags)
	out, ok := apply(p, text, cfg)
	var failed []int
	for i, applied := range ok {
		if !applied {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		return out, &ApplyError{Failed: failed, Hunks: len(ok)}
	}
	return out, nil
}
