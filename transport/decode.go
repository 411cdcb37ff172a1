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
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
	"znkr.io/docsync"
	"znkr.io/docsync/annotation"
	"znkr.io/docsync/marker"
	"znkr.io/docsync/setdiff"
	"znkr.io/docsync/textpos"
)

// Unmarshal decodes the JSON encoding of a document diff.
//
// A diff that is omitted or null is absent. Inside a present diff, omitted or null arrays are
// empty, and omitted or null scalars have their zero value. Values of the wrong JSON type result in
// an [*Error].
//
// Unmarshal only checks the shape of the JSON, use [docsync.FromRecord] to decode the record.
func Unmarshal(data []byte) (docsync.Record, error) {
	if !gjson.ValidBytes(data) {
		return docsync.Record{}, &Error{Msg: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return docsync.Record{}, typeError("", "object", root)
	}

	var rec docsync.Record
	var err error
	if rec.Patch, err = decodeString(root.Get(keyPatchText), keyPatchText); err != nil {
		return docsync.Record{}, err
	}
	if rec.Markers, err = decodeOptional(root.Get(keyMarkerDiff), keyMarkerDiff, decodeMarkerDiff); err != nil {
		return docsync.Record{}, err
	}
	if rec.Rows, err = decodeOptional(root.Get(keyRowDiff), keyRowDiff, decodeSetDiff(decodeRow)); err != nil {
		return docsync.Record{}, err
	}
	if rec.Ranges, err = decodeOptional(root.Get(keyRangeDiff), keyRangeDiff, decodeSetDiff(decodeRangeAnnotation)); err != nil {
		return docsync.Record{}, err
	}
	return rec, nil
}

func typeError(path, want string, got gjson.Result) *Error {
	return &Error{Path: path, Msg: fmt.Sprintf("expected %s, got %s", want, describe(got))}
}

func describe(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	case v.IsBool():
		return "boolean"
	}
	switch v.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number " + v.Raw
	}
	return v.Raw
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// missing reports whether v was omitted or is null.
func missing(v gjson.Result) bool {
	return !v.Exists() || v.Type == gjson.Null
}

func decodeOptional[R any](v gjson.Result, path string, dec func(gjson.Result, string) (R, error)) (*R, error) {
	if missing(v) {
		return nil, nil
	}
	r, err := dec(v, path)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeObject(v gjson.Result, path string) error {
	if !v.IsObject() {
		return typeError(path, "object", v)
	}
	return nil
}

// decodeArray returns a non-nil slice, even for a missing array.
func decodeArray[R any](v gjson.Result, path string, dec func(gjson.Result, string) (R, error)) ([]R, error) {
	if missing(v) {
		return []R{}, nil
	}
	if !v.IsArray() {
		return nil, typeError(path, "array", v)
	}
	elems := v.Array()
	out := make([]R, 0, len(elems))
	for i, elem := range elems {
		r, err := dec(elem, join(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func decodeString(v gjson.Result, path string) (string, error) {
	if missing(v) {
		return "", nil
	}
	if v.Type != gjson.String {
		return "", typeError(path, "string", v)
	}
	return v.Str, nil
}

func decodeInt(v gjson.Result, path string) (int, error) {
	if missing(v) {
		return 0, nil
	}
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) || math.Abs(v.Num) > math.MaxInt32 {
		return 0, typeError(path, "integer", v)
	}
	return int(v.Int()), nil
}

func decodeBool(v gjson.Result, path string) (bool, error) {
	if missing(v) {
		return false, nil
	}
	if !v.IsBool() {
		return false, typeError(path, "boolean", v)
	}
	return v.Bool(), nil
}

// fields decodes the keys of an object in order, stopping at the first error.
type fields struct {
	obj  gjson.Result
	path string
	err  error
}

func (f *fields) getString(key string, dst *string) {
	if f.err == nil {
		*dst, f.err = decodeString(f.obj.Get(key), join(f.path, key))
	}
}

func (f *fields) getInt(key string, dst *int) {
	if f.err == nil {
		*dst, f.err = decodeInt(f.obj.Get(key), join(f.path, key))
	}
}

func (f *fields) getBool(key string, dst *bool) {
	if f.err == nil {
		*dst, f.err = decodeBool(f.obj.Get(key), join(f.path, key))
	}
}

func (f *fields) getRange(key string, dst *textpos.Record) {
	if f.err == nil {
		*dst, f.err = decodeRange(f.obj.Get(key), join(f.path, key))
	}
}

func newFields(v gjson.Result, path string) *fields {
	return &fields{obj: v, path: path, err: decodeObject(v, path)}
}

func decodeRange(v gjson.Result, path string) (textpos.Record, error) {
	var rec textpos.Record
	if missing(v) {
		return rec, nil
	}
	f := newFields(v, path)
	f.getInt("startRow", &rec.StartRow)
	f.getInt("startCol", &rec.StartCol)
	f.getInt("endRow", &rec.EndRow)
	f.getInt("endCol", &rec.EndCol)
	return rec, f.err
}

func decodeMarkerDiff(v gjson.Result, path string) (marker.Record, error) {
	if err := decodeObject(v, path); err != nil {
		return marker.Record{}, err
	}
	added, err := decodeArray(v.Get("added"), join(path, "added"), decodeMarker)
	if err != nil {
		return marker.Record{}, err
	}
	removed, err := decodeArray(v.Get("removed"), join(path, "removed"), decodeString)
	if err != nil {
		return marker.Record{}, err
	}
	changed, err := decodeArray(v.Get("changed"), join(path, "changed"), decodeMarker)
	if err != nil {
		return marker.Record{}, err
	}
	return marker.Record{Added: added, Removed: removed, Changed: changed}, nil
}

func decodeMarker(v gjson.Result, path string) (marker.MarkerRecord, error) {
	var rec marker.MarkerRecord
	f := newFields(v, path)
	f.getString("id", &rec.ID)
	f.getRange("range", &rec.Range)
	f.getString("cssClass", &rec.CSSClass)
	f.getString("kind", &rec.Kind)
	f.getBool("inFront", &rec.InFront)
	f.getString("onChange", &rec.OnChange)
	return rec, f.err
}

func decodeSetDiff[R any](dec func(gjson.Result, string) (R, error)) func(gjson.Result, string) (setdiff.Record[R], error) {
	return func(v gjson.Result, path string) (setdiff.Record[R], error) {
		if err := decodeObject(v, path); err != nil {
			return setdiff.Record[R]{}, err
		}
		added, err := decodeArray(v.Get("added"), join(path, "added"), dec)
		if err != nil {
			return setdiff.Record[R]{}, err
		}
		removed, err := decodeArray(v.Get("removed"), join(path, "removed"), dec)
		if err != nil {
			return setdiff.Record[R]{}, err
		}
		return setdiff.Record[R]{Added: added, Removed: removed}, nil
	}
}

func decodeRow(v gjson.Result, path string) (annotation.RowRecord, error) {
	var rec annotation.RowRecord
	f := newFields(v, path)
	f.getInt("row", &rec.Row)
	f.getString("message", &rec.Message)
	f.getString("type", &rec.Type)
	return rec, f.err
}

func decodeRangeAnnotation(v gjson.Result, path string) (annotation.RangeRecord, error) {
	var rec annotation.RangeRecord
	f := newFields(v, path)
	f.getRange("range", &rec.Range)
	f.getString("message", &rec.Message)
	f.getString("type", &rec.Type)
	return rec, f.err
}
