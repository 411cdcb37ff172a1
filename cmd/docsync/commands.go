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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"znkr.io/docsync"
	"znkr.io/docsync/internal/linediff"
	"znkr.io/docsync/internal/snapshot"
	"znkr.io/docsync/setdiff"
	"znkr.io/docsync/textpatch/color"
	"znkr.io/docsync/transport"
)

func runDiff(_ context.Context, a *app, args []string) error {
	old, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	cur, err := snapshot.Load(args[1])
	if err != nil {
		return err
	}

	d := docsync.Compute(old, cur, a.cfg.makeOptions()...)
	a.log.Debug("computed diff", "hunks", d.Patch().Len(), "identity", d.IsIdentity())
	return a.writeDiff(d)
}

// writeDiff writes d in the transport encoding or as a record in the format selected with -format.
func (a *app) writeDiff(d *docsync.DocDiff) error {
	format, err := a.cfg.outputFormat(snapshot.JSON)
	if err != nil {
		return err
	}
	var data []byte
	if format == snapshot.JSON {
		data, err = transport.Marshal(d.Record())
		data = append(data, '\n')
	} else {
		data, err = snapshot.Marshal(d.Record(), format)
	}
	if err != nil {
		return fmt.Errorf("encoding diff: %v", err)
	}
	_, err = a.stdout.Write(data)
	return err
}

// loadDiff reads a diff file. JSON files are expected to use the transport encoding, YAML and TOML
// files hold a record.
func loadDiff(path string) (*docsync.DocDiff, error) {
	format, err := snapshot.FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec docsync.Record
	if format == snapshot.JSON {
		rec, err = transport.Unmarshal(data)
	} else {
		err = snapshot.Unmarshal(data, format, &rec)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d, err := docsync.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func runApply(_ context.Context, a *app, args []string) error {
	doc, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	d, err := loadDiff(args[1])
	if err != nil {
		return err
	}
	def, err := snapshot.FormatOf(args[0])
	if err != nil {
		return err
	}
	format, err := a.cfg.outputFormat(def)
	if err != nil {
		return err
	}

	got, err := a.apply(d, doc)
	if err != nil {
		return err
	}
	data, err := snapshot.Encode(got, format)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(data)
	return err
}

// apply applies d to doc. Hunks that can't be applied are an error with -strict and a warning
// otherwise.
func (a *app) apply(d *docsync.DocDiff, doc docsync.Document) (docsync.Document, error) {
	got, err := d.ApplyStrict(doc, a.cfg.applyOptions()...)
	if err != nil {
		if a.cfg.strict {
			return docsync.Document{}, err
		}
		a.log.Warn("diff applied partially", "err", err)
	}
	return got, nil
}

func runPreview(_ context.Context, a *app, args []string) error {
	doc, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	d, err := loadDiff(args[1])
	if err != nil {
		return err
	}
	got, err := a.apply(d, doc)
	if err != nil {
		return err
	}

	out := linediff.Unified(doc.Text(), got.Text(), a.cfg.context)
	if a.colorProfile() != termenv.Ascii {
		out = color.Colorize(out)
	}
	_, err = io.WriteString(a.stdout, out)
	return err
}

// colorProfile returns the color profile selected with -color.
func (a *app) colorProfile() termenv.Profile {
	switch a.cfg.color {
	case "always":
		return termenv.ANSI
	case "never":
		return termenv.Ascii
	default:
		return termenv.NewOutput(a.stdout).EnvColorProfile()
	}
}

func runShow(_ context.Context, a *app, args []string) error {
	d, err := loadDiff(args[0])
	if err != nil {
		return err
	}
	show(a.stdout, d, a.colorProfile())
	return nil
}

func show(w io.Writer, d *docsync.DocDiff, profile termenv.Profile) {
	heading := func(s string) string { return profile.String(s).Bold().String() }

	fmt.Fprintf(w, "%s %d hunks\n", heading("patch:"), d.Patch().Len())
	patch := d.Patch().String()
	if profile != termenv.Ascii {
		patch = color.Colorize(patch)
	}
	io.WriteString(w, patch)

	if md := d.Markers(); md == nil {
		fmt.Fprintf(w, "%s absent\n", heading("markers:"))
	} else {
		fmt.Fprintf(w, "%s %d added, %d removed, %d changed\n", heading("markers:"), len(md.Added()), len(md.Removed()), len(md.Changed()))
		for _, m := range md.Added() {
			fmt.Fprintf(w, "  + %v\n", m)
		}
		for _, id := range md.Removed() {
			fmt.Fprintf(w, "  - %s\n", id)
		}
		for _, m := range md.Changed() {
			fmt.Fprintf(w, "  ~ %v\n", m)
		}
	}
	showSetDiff(w, heading("row annotations:"), d.Rows())
	showSetDiff(w, heading("range annotations:"), d.Ranges())
	if d.IsIdentity() {
		fmt.Fprintln(w, "text and markers unchanged")
	}
}

func showSetDiff[T setdiff.Keyed](w io.Writer, heading string, d *setdiff.Diff[T]) {
	if d == nil {
		fmt.Fprintf(w, "%s absent\n", heading)
		return
	}
	fmt.Fprintf(w, "%s %d added, %d removed\n", heading, len(d.Added()), len(d.Removed()))
	for _, item := range d.Added() {
		fmt.Fprintf(w, "  + %v\n", item)
	}
	for _, item := range d.Removed() {
		fmt.Fprintf(w, "  - %v\n", item)
	}
}
