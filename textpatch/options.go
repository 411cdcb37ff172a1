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
	"time"

	"znkr.io/docsync/internal/config"
)

// Option configures the behavior of the functions in this package.
type Option = config.Option

// Margin sets the number of unchanged characters that surround every hunk as context. More context
// makes it more likely that a patch can be located in drifted text, at the cost of a larger patch.
// The margin is at least 1, the default is 4.
//
// Supported by [Make], [Apply], [ApplyStrict], and [Patch.Mapper].
func Margin(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Margin = max(1, n)
		return config.Margin
	}
}

// Minimal finds a minimal character diff irrespective of the cost. By default, [Make] limits the
// cost for large inputs with many differences by applying heuristics.
//
// Supported by [Make].
func Minimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeMinimal
		return config.Minimal
	}
}

// Compat computes the character diff with the diff-match-patch reference algorithm instead of
// Myers' algorithm. Patches created with this option are byte-identical to the ones other
// diff-match-patch implementations create for the same inputs, which is useful when peers compare
// patch text.
//
// Supported by [Make].
func Compat() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeCompat
		return config.Compat
	}
}

// Timeout limits the time spent computing a diff with [Compat]. When the limit is hit, the diff is
// valid but not minimal. Zero disables the limit. The default is one second.
//
// Supported by [Make].
func Timeout(d time.Duration) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Timeout = max(0, d)
		return config.Timeout
	}
}

// MatchThreshold sets how closely a hunk's context has to match when it's located by fuzzy
// matching: 0.0 requires a perfect match, 1.0 accepts almost anything. The default is 0.5.
//
// Supported by [Apply], [ApplyStrict], and [Patch.Mapper].
func MatchThreshold(f float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MatchThreshold = min(1, max(0, f))
		return config.MatchThreshold
	}
}

// MatchDistance sets how far from its expected location a hunk is searched. A match this many
// characters away scores as badly as a complete mismatch. The default is 1000.
//
// Supported by [Apply], [ApplyStrict], and [Patch.Mapper].
func MatchDistance(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MatchDistance = max(0, n)
		return config.MatchDistance
	}
}

// DeleteThreshold sets how closely the contents of a large deletion have to match the text that's
// deleted: 0.0 requires a perfect match, 1.0 accepts almost anything. The default is 0.5.
//
// Supported by [Apply], [ApplyStrict], and [Patch.Mapper].
func DeleteThreshold(f float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DeleteThreshold = min(1, max(0, f))
		return config.DeleteThreshold
	}
}
