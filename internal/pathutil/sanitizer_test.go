// Copyright 2026 The tagfs Authors.
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

package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasename(t *testing.T) {
	cases := map[string]string{
		"/a/b/c.txt": "c.txt",
		"/x":         "x",
		"/a/b/":      "b",
	}
	for in, want := range cases {
		assert.Equal(t, want, Basename(in), "Basename(%q)", in)
	}
}

func TestBasenamePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { Basename("/") })
}

func TestDisambiguateNoCollision(t *testing.T) {
	in := []string{"/a/path.txt", "/b/other.txt"}
	want := []string{"path.txt", "other.txt"}
	assert.Equal(t, want, Disambiguate(in))
}

func TestDisambiguateCollision(t *testing.T) {
	in := []string{"/a/path.txt", "/b/path.txt"}
	want := []string{"path.txt.0", "path.txt.1"}
	assert.Equal(t, want, Disambiguate(in))
}

func TestDisambiguateDeterminismAcrossInput(t *testing.T) {
	in := []string{"/a/x", "/b/x", "/c/x", "/d/y"}
	got := Disambiguate(in)
	seen := make(map[string]bool)
	for _, name := range got {
		assert.False(t, seen[name], "duplicate display name %q in %v", name, got)
		seen[name] = true
	}
}

func TestSanitiseValue(t *testing.T) {
	assert.Equal(t, "a value with a _ in it", SanitiseValue("a value with a / in it"))
}
