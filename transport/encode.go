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

package transport

import (
	"bytes"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"znkr.io/docsync"
	"znkr.io/docsync/annotation"
	"znkr.io/docsync/marker"
	"znkr.io/docsync/setdiff"
	"znkr.io/docsync/textpos"
)

// Marshal returns the JSON encoding of rec. Absent diffs are written as null, empty collections as
// empty arrays.
func Marshal(rec docsync.Record) ([]byte, error) {
	markers, err := encodeOptional(rec.Markers, encodeMarkerDiff)
	if err != nil {
		return nil, err
	}
	rows, err := encodeOptional(rec.Rows, encodeSetDiff(encodeRow))
	if err != nil {
		return nil, err
	}
	ranges, err := encodeOptional(rec.Ranges, encodeSetDiff(encodeRange))
	if err != nil {
		return nil, err
	}

	var e encoder
	e.set(keyPatchText, rec.Patch)
	e.setRaw(keyMarkerDiff, markers)
	e.setRaw(keyRowDiff, rows)
	e.setRaw(keyRangeDiff, ranges)
	return e.result()
}

// encoder builds a JSON object key by key. The first error sticks.
type encoder struct {
	buf []byte
	err error
}

func (e *encoder) set(path string, v any) {
	if e.err != nil {
		return
	}
	e.buf, e.err = sjson.SetBytes(e.buf, path, v)
}

func (e *encoder) setRaw(path string, raw []byte) {
	if e.err != nil {
		return
	}
	e.buf, e.err = sjson.SetRawBytes(e.buf, path, raw)
}

func (e *encoder) setRange(path string, r textpos.Record) {
	e.set(path+".startRow", r.StartRow)
	e.set(path+".startCol", r.StartCol)
	e.set(path+".endRow", r.EndRow)
	e.set(path+".endCol", r.EndCol)
}

// result returns the encoded object.
func (e *encoder) result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if len(e.buf) == 0 {
		return []byte("{}"), nil
	}
	return e.buf, nil
}

func encodeOptional[R any](v *R, enc func(R) ([]byte, error)) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return enc(*v)
}

func encodeArray[R any](items []R, enc func(R) ([]byte, error)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw, err := enc(item)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func encodeString(s string) ([]byte, error) {
	return gjson.AppendJSONString(nil, s), nil
}

func encodeMarkerDiff(rec marker.Record) ([]byte, error) {
	added, err := encodeArray(rec.Added, encodeMarker)
	if err != nil {
		return nil, err
	}
	removed, err := encodeArray(rec.Removed, encodeString)
	if err != nil {
		return nil, err
	}
	changed, err := encodeArray(rec.Changed, encodeMarker)
	if err != nil {
		return nil, err
	}
	var e encoder
	e.setRaw("added", added)
	e.setRaw("removed", removed)
	e.setRaw("changed", changed)
	return e.result()
}

func encodeMarker(rec marker.MarkerRecord) ([]byte, error) {
	var e encoder
	e.set("id", rec.ID)
	e.setRange("range", rec.Range)
	e.set("cssClass", rec.CSSClass)
	e.set("kind", rec.Kind)
	e.set("inFront", rec.InFront)
	e.set("onChange", rec.OnChange)
	return e.result()
}

func encodeSetDiff[R any](enc func(R) ([]byte, error)) func(setdiff.Record[R]) ([]byte, error) {
	return func(rec setdiff.Record[R]) ([]byte, error) {
		added, err := encodeArray(rec.Added, enc)
		if err != nil {
			return nil, err
		}
		removed, err := encodeArray(rec.Removed, enc)
		if err != nil {
			return nil, err
		}
		var e encoder
		e.setRaw("added", added)
		e.setRaw("removed", removed)
		return e.result()
	}
}

func encodeRow(rec annotation.RowRecord) ([]byte, error) {
	var e encoder
	e.set("row", rec.Row)
	e.set("message", rec.Message)
	e.set("type", rec.Type)
	return e.result()
}

func encodeRange(rec annotation.RangeRecord) ([]byte, error) {
	var e encoder
	e.setRange("range", rec.Range)
	e.set("message", rec.Message)
	e.set("type", rec.Type)
	return e.result()
}
