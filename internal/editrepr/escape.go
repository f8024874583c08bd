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

package editrepr

import "strings"

// escapedChars is the set of characters a tag line backslash-escapes: the
// quote and value delimiters, the escape character itself, and the two
// parens used elsewhere in the format's grammar.
const escapedChars = `" \()`

// escape backslash-escapes every character in escapedChars.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(escapedChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unescape reverses escape: a backslash makes the following rune literal,
// whatever it is. A trailing unpaired backslash is returned as-is.
func unescape(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// splitTagLine splits an unescaped tag line into name and optional value at
// the first unescaped '='. ok is false if name would be empty.
func splitTagLine(line string) (name, value string, hasValue bool, ok bool) {
	escaped := false
	for i, r := range line {
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '=' {
			if i == 0 {
				return "", "", false, false
			}
			return unescape(line[:i]), unescape(line[i+1:]), true, true
		}
	}
	name = unescape(line)
	if name == "" {
		return "", "", false, false
	}
	return name, "", false, true
}
