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

// Package snapshot reads and writes document snapshot files.
//
// A snapshot holds the text, the markers, and the two annotation sets of a document. Annotation
// sets that are missing from a snapshot are absent, an empty list is an empty set.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"znkr.io/docsync"
	"znkr.io/docsync/annotation"
	"znkr.io/docsync/marker"
	"znkr.io/docsync/setdiff"
)

//go:generate go tool golang.org/x/tools/cmd/stringer -type=Format -linecomment

// Format is a snapshot file format.
type Format int

const (
	JSON Format = iota // json
	YAML               // yaml
	TOML               // toml
)

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	for f := JSON; f <= TOML; f++ {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q, want json, yaml, or toml", s)
}

// FormatOf returns the format of a file based on its extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("%s: unknown snapshot extension %q", path, ext)
	}
}

// File is the on-disk form of a document.
type File struct {
	Text    string                    `json:"text" yaml:"text" toml:"text,multiline"`
	Markers []marker.MarkerRecord     `json:"markers,omitempty" yaml:"markers,omitempty" toml:"markers,omitempty"`
	Rows    *[]annotation.RowRecord   `json:"rows,omitempty" yaml:"rows,omitempty" toml:"rows,omitempty"`
	Ranges  *[]annotation.RangeRecord `json:"ranges,omitempty" yaml:"ranges,omitempty" toml:"ranges,omitempty"`
}

// FromDocument returns the snapshot of doc. Markers and annotations are sorted.
func FromDocument(doc docsync.Document) File {
	f := File{Text: doc.Text()}
	for _, m := range marker.Sorted(doc.Markers()) {
		f.Markers = append(f.Markers, m.Record())
	}
	f.Rows = records[annotation.Row, annotation.RowRecord](doc.Rows())
	f.Ranges = records[annotation.Range, annotation.RangeRecord](doc.Ranges())
	return f
}

func records[T setdiff.Item[R], R any](s *setdiff.Set[T]) *[]R {
	if s == nil {
		return nil
	}
	out := make([]R, 0, s.Len())
	for _, item := range s.Sorted() {
		out = append(out, item.Record())
	}
	return &out
}

// Document decodes the snapshot.
func (f File) Document() (docsync.Document, error) {
	markers := make(map[string]marker.Marker, len(f.Markers))
	for i, rec := range f.Markers {
		m, err := marker.Decode(rec)
		if err != nil {
			return docsync.Document{}, fmt.Errorf("markers[%d]: %w", i, err)
		}
		if _, dup := markers[m.ID]; dup {
			return docsync.Document{}, fmt.Errorf("markers[%d]: duplicate marker ID %q", i, m.ID)
		}
		markers[m.ID] = m
	}
	rows, err := set(f.Rows, annotation.DecodeRow)
	if err != nil {
		return docsync.Document{}, fmt.Errorf("rows%w", err)
	}
	ranges, err := set(f.Ranges, annotation.DecodeRange)
	if err != nil {
		return docsync.Document{}, fmt.Errorf("ranges%w", err)
	}
	return docsync.NewDocument(f.Text, markers, rows, ranges), nil
}

func set[T setdiff.Keyed, R any](recs *[]R, decode func(R) (T, error)) (*setdiff.Set[T], error) {
	if recs == nil {
		return nil, nil
	}
	items := make([]T, 0, len(*recs))
	for i, rec := range *recs {
		item, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return setdiff.NewSet(items...), nil
}

// Marshal encodes v in the given format. v is either a [File] or a [docsync.Record].
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case JSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case YAML:
		return yaml.Marshal(v)
	case TOML:
		return toml.Marshal(v)
	default:
		panic(fmt.Sprintf("unknown format %v", format))
	}
}

// Unmarshal decodes data in the given format into v.
func Unmarshal(data []byte, format Format, v any) error {
	switch format {
	case JSON:
		return json.Unmarshal(data, v)
	case YAML:
		return yaml.Unmarshal(data, v)
	case TOML:
		return toml.Unmarshal(data, v)
	default:
		panic(fmt.Sprintf("unknown format %v", format))
	}
}

// Encode returns the snapshot of doc in the given format.
func Encode(doc docsync.Document, format Format) ([]byte, error) {
	return Marshal(FromDocument(doc), format)
}

// Decode decodes a snapshot in the given format.
func Decode(data []byte, format Format) (docsync.Document, error) {
	var f File
	if err := Unmarshal(data, format, &f); err != nil {
		return docsync.Document{}, err
	}
	return f.Document()
}

// Load reads the snapshot file at path. The format is chosen by the file extension.
func Load(path string) (docsync.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return docsync.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return docsync.Document{}, err
	}
	doc, err := Decode(data, format)
	if err != nil {
		return docsync.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes the snapshot of doc to path. The format is chosen by the file extension.
func Save(path string, doc docsync.Document) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
