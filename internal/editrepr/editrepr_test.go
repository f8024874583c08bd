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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestParseRoundTrip(t *testing.T) {
	blocks := []Block{
		{
			Path:   "/films/Heat (1995)",
			Manual: []Tag{{Name: "genre", Value: strp("crime")}, {Name: "favourite"}},
			Auto:   []Tag{{Name: "runtime", Value: strp("170 min")}},
		},
		{
			Path:   "/films/Clerks (1994)",
			Manual: []Tag{{Name: "genre", Value: strp("slice of life")}},
		},
	}

	var sb strings.Builder
	require.NoError(t, Format(&sb, blocks))

	parsed, err := Parse(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, blocks, parsed)
}

func TestParseEscapesSpecialCharacters(t *testing.T) {
	input := "--------\n" +
		"/some/path\n" +
		`tag\ with\ space=a\ value\ with\ "quotes"\ and\ \(parens\)` + "\n"

	blocks, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Manual, 1)
	assert.Equal(t, "tag with space", blocks[0].Manual[0].Name)
	assert.Equal(t, `a value with "quotes" and (parens)`, *blocks[0].Manual[0].Value)
}

func TestParseAutoSeparator(t *testing.T) {
	input := "--------\n" +
		"/a/path\n" +
		"manual-tag\n" +
		"--AUTO--\n" +
		"auto-tag=auto-value\n"

	blocks, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Manual, 1)
	require.Len(t, blocks[0].Auto, 1)
	assert.Equal(t, "manual-tag", blocks[0].Manual[0].Name)
	assert.Nil(t, blocks[0].Manual[0].Value)
	assert.Equal(t, "auto-tag", blocks[0].Auto[0].Name)
	assert.Equal(t, "auto-value", *blocks[0].Auto[0].Value)
}

func TestParseCommentsAndBlankLinesIgnored(t *testing.T) {
	input := "// a comment at column 0\n" +
		"--------\n" +
		"\n" +
		"/a/path\n" +
		"\n" +
		"// another comment\n" +
		"tag1\n"

	blocks, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "/a/path", blocks[0].Path)
	require.Len(t, blocks[0].Manual, 1)
	assert.Equal(t, "tag1", blocks[0].Manual[0].Name)
}

func TestParseMultipleBlocksWithoutLeadingDelimiter(t *testing.T) {
	input := "/first/path\n" +
		"tag1\n" +
		"--------\n" +
		"/second/path\n" +
		"tag2=val\n"

	blocks, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "/first/path", blocks[0].Path)
	assert.Equal(t, "/second/path", blocks[1].Path)
}

func TestParseRejectsTagsWithoutPath(t *testing.T) {
	input := "--------\n" +
		"--AUTO--\n" +
		"tag1\n"
	_, err := Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParseRejectsDuplicateAutoMarker(t *testing.T) {
	input := "--------\n" +
		"/a/path\n" +
		"--AUTO--\n" +
		"--AUTO--\n"
	_, err := Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParseRejectsEmptyTagName(t *testing.T) {
	input := "--------\n" +
		"/a/path\n" +
		"=novalue\n"
	_, err := Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParseEmptyInputYieldsNoBlocks(t *testing.T) {
	blocks, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
