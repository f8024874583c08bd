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

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesblissett/tagfs/internal/query"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "tags.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strp(s string) *string { return &s }

func TestTagInsertionOrderStable(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "zeta", nil, false)
	require.NoError(t, err)
	_, err = s.Tag("/b", "alpha", nil, false)
	require.NoError(t, err)

	names, err := s.AllTagNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, names)
}

func TestTagValueSymmetryViolation(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "status", strp("done"), false)
	require.NoError(t, err)

	_, err = s.Tag("/b", "status", nil, false)
	assert.ErrorIs(t, err, ErrValueSymmetry)
}

func TestTagDuplicateRejected(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "project", strp("tagfs"), false)
	require.NoError(t, err)

	_, err = s.Tag("/a", "project", strp("tagfs"), false)
	assert.ErrorIs(t, err, ErrDuplicateTag)
}

func TestAutoTagSuppressesDuplicateError(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "ext", strp("go"), true)
	require.NoError(t, err)
	_, err = s.Tag("/a", "ext", strp("go"), true)
	assert.NoError(t, err)
}

func TestUntagOrphanEliminatesTag(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "scratch", nil, false)
	require.NoError(t, err)

	require.NoError(t, s.Untag("/a", "scratch", nil))

	_, err = s.TagInfoByName("scratch")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUntagNotTagged(t *testing.T) {
	s := newTestStore(t)
	err := s.Untag("/a", "missing", nil)
	assert.ErrorIs(t, err, ErrNotTagged)
}

func TestPathsWithTagAndValues(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "status", strp("done"), false)
	require.NoError(t, err)
	_, err = s.Tag("/b", "status", strp("todo"), false)
	require.NoError(t, err)

	values, err := s.Values("status")
	require.NoError(t, err)
	assert.Equal(t, []string{"done", "todo"}, values)

	mappings, err := s.PathsWithTag("status", strp("done"))
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "/a", mappings[0].Path)
}

func TestPrefixChange(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/old/file.txt", "kind", strp("doc"), false)
	require.NoError(t, err)

	n, err := s.PrefixChange("/old", "/new")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mappings, err := s.PathsWithTag("kind", strp("doc"))
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "/new/file.txt", mappings[0].Path)
}

func TestStoredQueryLifecycle(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateStoredQuery("recent", "status==done"))

	err := s.CreateStoredQuery("recent", "status==done")
	assert.ErrorIs(t, err, ErrStoredQueryExists)

	q, err := s.StoredQueryByName("recent")
	require.NoError(t, err)
	assert.Equal(t, "status==done", q.QueryText)

	require.NoError(t, s.DeleteStoredQuery("recent"))
	_, err = s.StoredQueryByName("recent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryBooleanSemantics(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "lang", strp("go"), false)
	require.NoError(t, err)
	_, err = s.Tag("/a", "status", strp("done"), false)
	require.NoError(t, err)
	_, err = s.Tag("/b", "lang", strp("rust"), false)
	require.NoError(t, err)

	results, err := s.Query(`lang=="go" and status=="done"`, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/a", results[0].Path)

	results, err = s.Query(`lang=="go" or lang=="rust"`, true)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.Query(`not lang=="go"`, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/b", results[0].Path)
}

func TestQueryValueWithSlash(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Tag("/a", "path-like", strp("a/b/c"), false)
	require.NoError(t, err)

	results, err := s.Query(`path-like==`+query.Quote("a/b/c"), true)
	require.NoError(t, err)
	require.Len(t, results, 1)
}
