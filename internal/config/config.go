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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// textpatch.Option and color.Option.
package config

import (
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Mode describes the mode of the diff algorithm.
type Mode int

const (
	// Limit the cost for large inputs with many differences by applying heuristics that reduce the
	// time complexity at the cost of non-minimal diffs.
	ModeDefault Mode = iota

	// Find a minimal diff irrespective of the cost.
	ModeMinimal

	// Use the diff-match-patch reference diff so that patches are byte-identical to the ones
	// produced by other diff-match-patch implementations.
	ModeCompat
)

// Config collects all configurable parameters for the functions in this module.
type Config struct {
	// Diff algorithm mode.
	Mode Mode

	// Margin is the number of unchanged characters used as context around each patch hunk.
	Margin int

	// Timeout bounds the time spent in the reference diff (ModeCompat only). Zero means no limit.
	Timeout time.Duration

	// MatchThreshold controls when a fuzzy match is rejected (0.0 = perfection, 1.0 = very loose).
	MatchThreshold float64

	// MatchDistance controls how far from the expected location a fuzzy match is searched. A
	// match this many characters away adds 1.0 to the score.
	MatchDistance int

	// DeleteThreshold controls how closely the contents of large deletions have to match.
	DeleteThreshold float64
}

// Default is the default configuration. The values match the diff-match-patch defaults, except for
// the timeout.
var Default = Config{
	Mode:            ModeDefault,
	Margin:          4,
	Timeout:         time.Second,
	MatchThreshold:  0.5,
	MatchDistance:   1000,
	DeleteThreshold: 0.5,
}

// Engine returns a fresh diff-match-patch engine configured from cfg. Engines are never shared
// between calls.
func (cfg Config) Engine() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = cfg.Timeout
	dmp.PatchMargin = cfg.Margin
	dmp.MatchThreshold = cfg.MatchThreshold
	dmp.MatchDistance = cfg.MatchDistance
	dmp.PatchDeleteThreshold = cfg.DeleteThreshold
	return dmp
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Minimal Flag = 1 << iota
	Compat
	Margin
	Timeout
	MatchThreshold
	MatchDistance
	DeleteThreshold
)

// MakeFlags are the flags understood when computing a patch.
const MakeFlags = Minimal | Compat | Margin | Timeout

// ApplyFlags are the flags understood when applying a patch.
const ApplyFlags = Margin | MatchThreshold | MatchDistance | DeleteThreshold

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Minimal:
		return "textpatch.Minimal"
	case Compat:
		return "textpatch.Compat"
	case Margin:
		return "textpatch.Margin"
	case Timeout:
		return "textpatch.Timeout"
	case MatchThreshold:
		return "textpatch.MatchThreshold"
	case MatchDistance:
		return "textpatch.MatchDistance"
	case DeleteThreshold:
		return "textpatch.DeleteThreshold"
	default:
		panic("never reached")
	}
}

// ColorConfig holds the ANSI escape sequences used to colorize patch text.
type ColorConfig struct {
	HunkHeader string
	Match      string
	Delete     string
	Insert     string
}

// DefaultColors is the default color configuration.
var DefaultColors = ColorConfig{
	HunkHeader: "\033[36m",
	Match:      "",
	Delete:     "\033[31m",
	Insert:     "\033[32m",
}
