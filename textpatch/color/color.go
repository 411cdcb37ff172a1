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

// Package color colorizes the text form of patches using ANSI escape sequences.
//
// Specifying colors uses [Select Graphic Rendition parameters]. For example the code below,
// presents the header in bold yellow:
//
//	HunkHeaders(1, 33)
//
// This is equivalent to the following raw ANSI sequence: \033[1;33m.
//
// It's the responsibility of the caller to ensure that the parameters are correct and supported
// by the underlying terminal.
//
// [Select Graphic Rendition parameters]: https://en.wikipedia.org/wiki/ANSI_escape_code#SGR
package color

import (
	"fmt"
	"strings"

	"znkr.io/docsync/internal/config"
)

const reset = "\033[0m"

// A Option makes it possible to configure custom colors in [Colorize].
type Option func(*config.ColorConfig)

// HunkHeaders colors hunk headers, the "@@ ... @@" lines of a patch.
func HunkHeaders(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.HunkHeader = code
	}
}

// Matches colors context lines.
func Matches(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Match = code
	}
}

// Deletes colors deleted text.
func Deletes(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Delete = code
	}
}

// Inserts colors inserted text.
func Inserts(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Insert = code
	}
}

func format(params []int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}

// Colorize colors every line of the patch text s according to its kind. Lines that don't belong to
// a patch are left as they are.
func Colorize(s string, opts ...Option) string {
	cc := config.DefaultColors
	for _, opt := range opts {
		opt(&cc)
	}

	var sb strings.Builder
	sb.Grow(len(s) + len(s)/4)
	for line := range strings.Lines(s) {
		body, nl := strings.CutSuffix(line, "\n")
		var code string
		switch {
		case strings.HasPrefix(body, "@@"):
			code = cc.HunkHeader
		case strings.HasPrefix(body, "-"):
			code = cc.Delete
		case strings.HasPrefix(body, "+"):
			code = cc.Insert
		case strings.HasPrefix(body, " "):
			code = cc.Match
		}
		if code == "" {
			sb.WriteString(line)
			continue
		}
		sb.WriteString(code)
		sb.WriteString(body)
		sb.WriteString(reset)
		if nl {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
