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

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBareAtom(t *testing.T) {
	expr, err := Parse("project")
	require.NoError(t, err)
	atom, ok := expr.(Atom)
	require.True(t, ok, "got %#v", expr)
	assert.Equal(t, "project", atom.Tag)
	assert.Equal(t, OpHas, atom.Op)
}

func TestParseOperators(t *testing.T) {
	cases := map[string]Operator{
		`status==done`: OpExact,
		`status=don`:   OpSubstring,
		`year<2020`:    OpLess,
		`year>2020`:    OpGreater,
	}
	for q, wantOp := range cases {
		expr, err := Parse(q)
		require.NoError(t, err, "Parse(%q)", q)
		atom, ok := expr.(Atom)
		require.True(t, ok, "Parse(%q) = %#v", q, expr)
		assert.Equal(t, wantOp, atom.Op, "Parse(%q)", q)
	}
}

// not binds tighter than and, which binds tighter than or.
func TestPrecedence(t *testing.T) {
	expr, err := Parse("a or b and not c")
	require.NoError(t, err)
	or, ok := expr.(Or)
	require.True(t, ok, "top level should be Or, got %#v", expr)
	_, ok = or.Left.(Atom)
	assert.True(t, ok, "left of or should be atom a, got %#v", or.Left)
	and, ok := or.Right.(And)
	require.True(t, ok, "right of or should be And, got %#v", or.Right)
	not, ok := and.Right.(Not)
	require.True(t, ok, "right of and should be Not, got %#v", and.Right)
	_, ok = not.X.(Atom)
	assert.True(t, ok, "not should wrap atom c, got %#v", not.X)
}

func TestParseParens(t *testing.T) {
	expr, err := Parse("(a or b) and c")
	require.NoError(t, err)
	and, ok := expr.(And)
	require.True(t, ok, "top level should be And, got %#v", expr)
	_, ok = and.Left.(Or)
	assert.True(t, ok, "left of and should be parenthesized Or, got %#v", and.Left)
}

func TestParseQuotedValue(t *testing.T) {
	expr, err := Parse(`title=="a value with spaces"`)
	require.NoError(t, err)
	atom, ok := expr.(Atom)
	require.True(t, ok, "got %#v", expr)
	assert.Equal(t, "a value with spaces", atom.Value)
}

func TestParseInvalidQuery(t *testing.T) {
	_, err := Parse("a and")
	assert.Error(t, err, "expected error for dangling and")
}

func TestParseUnterminatedQuote(t *testing.T) {
	_, err := Parse(`title=="unterminated`)
	assert.Error(t, err, "expected error for unterminated quote")
}
