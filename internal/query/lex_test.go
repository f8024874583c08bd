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

func TestQuoteRoundTrip(t *testing.T) {
	cases := []string{
		"simple",
		"has space",
		"has/slash",
		`has"quote`,
		`has\backslash`,
		"and",
		"",
	}
	for _, s := range cases {
		query := "tag==" + Quote(s)
		tokens, err := lex(query)
		require.NoError(t, err, "lex(%q)", query)
		require.Len(t, tokens, 4, "lex(%q) = %v, want tag, ==, single ident value, EOF", query, tokens)
		require.Equal(t, tokIdent, tokens[2].kind)
		assert.Equal(t, s, tokens[2].text, "round trip of %q through Quote", s)
	}
}

func TestLexIdempotentOnBareIdent(t *testing.T) {
	a, err := lex("project")
	require.NoError(t, err)
	b, err := lex("project")
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	assert.Equal(t, a[0].text, b[0].text)
}

func TestNeedsQuoting(t *testing.T) {
	assert.False(t, NeedsQuoting("plain"), "plain should not need quoting")
	assert.True(t, NeedsQuoting("has space"), "value with space should need quoting")
	assert.True(t, NeedsQuoting("and"), "keyword and should need quoting")
}
