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

package docsync_test

import (
	"fmt"

	"znkr.io/docsync"
	"znkr.io/docsync/marker"
	"znkr.io/docsync/textpos"
)

func ExampleCompute() {
	old := docsync.NewDocument("hello", marker.Map(
		marker.New("m", textpos.NewRange(0, 0, 0, 5), "highlight", marker.KindText, false, marker.Adjust),
	), nil, nil)
	new := old.Edit("xx hello")

	d := docsync.Compute(old, new)

	// A peer that has drifted still receives the text change and the relocated marker.
	peer := old.WithText("hello!")
	peer = d.Apply(peer)
	m, _ := peer.Marker("m")
	fmt.Println(peer.Text())
	fmt.Println(m.Range)
	// Output:
	// xx hello!
	// [0:3-0:8)
}

func ExampleComputeText() {
	d := docsync.ComputeText("hello world", "hello brave world")
	fmt.Println(d.ApplyText("hello world!"))
	fmt.Println(d.Markers() == nil, d.Rows() == nil, d.Ranges() == nil)
	// Output:
	// hello brave world!
	// true true true
}
