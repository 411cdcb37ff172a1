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

// Package transport encodes document diffs as JSON for the wire between two peers.
//
// The encoding keeps the difference between an absent diff and an empty one: an absent marker or
// annotation diff is written as null, an empty one as an object with empty arrays. When decoding,
// an omitted key is treated like null.
//
// A document diff looks like this:
//
//	{
//	  "patchText": "@@ -1,5 +1,8 @@\n+xx \n hello\n",
//	  "markerDiff": {
//	    "added": [],
//	    "removed": [],
//	    "changed": [{
//	      "id": "m",
//	      "range": {"startRow": 0, "startCol": 3, "endRow": 0, "endCol": 8},
//	      "cssClass": "highlight",
//	      "kind": "text",
//	      "inFront": false,
//	      "onChange": "adjust"
//	    }]
//	  },
//	  "rowAnnotationDiff": null,
//	  "rangeAnnotationDiff": {"added": [], "removed": []}
//	}
//
// Row annotations are objects with "row", "message", and "type", range annotations replace "row"
// with a "range" object.
//
// Any diff-match-patch implementation can parse and apply "patchText". By default the text is
// computed with a different diff algorithm though, so it isn't byte-identical to what other
// diff-match-patch peers produce for the same change. Peers that compare patch texts need diffs
// computed with [znkr.io/docsync/textpatch.Compat].
package transport

import (
	"fmt"
)

// Error reports malformed JSON. Path is the gjson path of the offending value, it is empty if the
// input is not valid JSON at all.
type Error struct {
	Path string
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "transport: " + e.Msg
	}
	return fmt.Sprintf("transport: %s: %s", e.Path, e.Msg)
}

// JSON keys of a document diff.
const (
	keyPatchText  = "patchText"
	keyMarkerDiff = "markerDiff"
	keyRowDiff    = "rowAnnotationDiff"
	keyRangeDiff  = "rangeAnnotationDiff"
)
