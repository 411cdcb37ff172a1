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

// Package docsync computes and applies differences between versions of a rich text document.
//
// A [Document] is an immutable snapshot of text, positional markers, and two sets of annotations.
// A [DocDiff] combines a text patch, a marker diff, and two annotation set diffs into one unit that
// can be applied to a copy of the document, even if that copy's text has drifted in the meantime.
// Text patches are applied with fuzzy matching, hunks that can't be located are skipped. Use
// [DocDiff.ApplyStrict] to find out about skipped hunks.
//
// Every part of a DocDiff except the text patch can be absent. An absent part leaves the
// corresponding part of the document untouched, which is different from a present but empty part.
// This distinction survives the transport form, see [Record] and [znkr.io/docsync/transport].
//
// A typical exchange between two peers looks like this:
//
//	d := docsync.Compute(old, new)
//	data, err := transport.Marshal(d.Record())
//	// ... send data to the peer, where:
//	rec, err := transport.Unmarshal(data)
//	d, err := docsync.FromRecord(rec)
//	doc = d.Apply(doc)
//
// [znkr.io/docsync/transport]: https://pkg.go.dev/znkr.io/docsync/transport
package docsync
