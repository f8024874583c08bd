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

// Package pathutil turns a list of original (possibly colliding) paths into
// unique, path-safe display names for the synthetic directories tagfs
// exposes.
package pathutil

import (
	"strconv"
	"strings"
)

// Basename returns the final path component of p. It panics if p has no
// final component (e.g. "" or "/"): paths stored in the tag store are
// always non-empty absolute paths by construction, so this indicates a
// caller bug rather than a runtime condition.
func Basename(p string) string {
	trimmed := strings.TrimRight(p, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	base := trimmed[idx+1:]
	if base == "" {
		panic("pathutil: Basename: path has no final component: " + p)
	}
	return base
}

// Disambiguate returns, for each path in paths, the name that should be
// displayed as a directory entry: the basename verbatim, unless some other
// entry in paths shares that basename, in which case it is
// "basename.<index>" where index is the path's position in the slice.
//
// The result is only unique relative to the exact ordering of paths passed
// in (see spec's open question on sanitation being position-dependent):
// callers must fix that ordering (e.g. ascending mapping id) to avoid
// flaky disambiguation across calls.
func Disambiguate(paths []string) []string {
	bases := make([]string, len(paths))
	counts := make(map[string]int, len(paths))
	for i, p := range paths {
		b := Basename(p)
		bases[i] = b
		counts[b]++
	}

	out := make([]string, len(paths))
	for i, b := range bases {
		if counts[b] > 1 {
			out[i] = b + "." + strconv.Itoa(i)
		} else {
			out[i] = b
		}
	}
	return out
}

// SanitiseValue replaces every "/" in v with "_" so a tag value can be used
// as a single path component. The transform is lossless for display only:
// the raw value is kept alongside (see internal/inode's ValueDir) so queries
// still use the real value.
func SanitiseValue(v string) string {
	return strings.ReplaceAll(v, "/", "_")
}
