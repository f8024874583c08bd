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

package vfs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jacobsa/fuse/fuseops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesblissett/tagfs/internal/clock"
	"github.com/jamesblissett/tagfs/internal/inode"
	"github.com/jamesblissett/tagfs/internal/store"
)

func newTestFrontend(t *testing.T) *Frontend {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tags.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, &clock.FakeClock{FixedTime: time.Unix(1700000000, 0)})
}

func strp(s string) *string { return &s }

func namesOf(children []child) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.name
	}
	return out
}

func TestTagAndListScenario(t *testing.T) {
	fe := newTestFrontend(t)
	_, err := fe.store.Tag("hello", "cool-tag", nil, false)
	require.NoError(t, err)

	tagDir := fe.graph.GetOrCreateTagDir("cool-tag")
	children := fe.materialize(tagDir)
	assert.Equal(t, []string{"hello"}, namesOf(children))
}

func TestSiblingCollisionScenario(t *testing.T) {
	fe := newTestFrontend(t)
	_, err := fe.store.Tag("/a/path.txt", "type", strp("foo"), false)
	require.NoError(t, err)
	_, err = fe.store.Tag("/b/path.txt", "type", strp("foo"), false)
	require.NoError(t, err)

	tagDir := fe.graph.GetOrCreateTagDir("type")
	valueDir := fe.graph.GetOrCreateValueDir(tagDir, "foo", "foo")
	children := fe.materializeValueDir(valueDir)

	names := namesOf(children)
	assert.ElementsMatch(t, []string{"path.txt.0", "path.txt.1"}, names)
}

func TestMirrorFileScenario(t *testing.T) {
	fe := newTestFrontend(t)
	_, err := fe.store.Tag("/my/x/file", "k1", nil, false)
	require.NoError(t, err)
	_, err = fe.store.Tag("/my/x/file", "k2", strp("v"), false)
	require.NoError(t, err)

	allTags := fe.graph.GetOrCreateAllTagsDir()
	level1 := fe.materializeAllTagsLevel(allTags)
	require.Len(t, level1, 1)
	assert.Equal(t, "my", level1[0].name)

	level2 := fe.materializeAllTagsLevel(level1[0].id)
	require.Len(t, level2, 1)
	assert.Equal(t, "x", level2[0].name)

	level3 := fe.materializeAllTagsLevel(level2[0].id)
	require.Len(t, level3, 1)
	assert.Equal(t, "file.tags", level3[0].name)

	op := &fuseops.ReadFileOp{Inode: fuseops.InodeID(level3[0].id), Dst: make([]byte, 64)}
	require.NoError(t, fe.ReadFile(context.Background(), op))
	assert.Equal(t, "k1\nk2=v\n", string(op.Dst[:op.BytesRead]))
}

func TestValueWithSlashScenario(t *testing.T) {
	fe := newTestFrontend(t)
	_, err := fe.store.Tag("/some/path", "mytag", strp("a value with a / in it"), false)
	require.NoError(t, err)

	tagDir := fe.graph.GetOrCreateTagDir("mytag")
	children := fe.materializeTagDir(tagDir)
	require.Len(t, children, 1)
	assert.Equal(t, "a value with a _ in it", children[0].name)

	grandchildren := fe.materializeValueDir(children[0].id)
	require.Len(t, grandchildren, 1)

	op := &fuseops.ReadSymlinkOp{Inode: fuseops.InodeID(grandchildren[0].id)}
	require.NoError(t, fe.ReadSymlink(context.Background(), op))
	assert.Equal(t, "/some/path", op.Target)
}

func TestLookupRootResolvesReservedAndTagNames(t *testing.T) {
	fe := newTestFrontend(t)
	_, err := fe.store.Tag("/a", "project", nil, false)
	require.NoError(t, err)

	op := &fuseops.LookUpInodeOp{Parent: fuseops.InodeID(inode.RootID), Name: "project"}
	require.NoError(t, fe.LookUpInode(context.Background(), op))
	assert.Equal(t, fe.graph.Type(inode.ID(op.Entry.Child)), inode.TagDir)

	op2 := &fuseops.LookUpInodeOp{Parent: fuseops.InodeID(inode.RootID), Name: "?"}
	require.NoError(t, fe.LookUpInode(context.Background(), op2))
	assert.Equal(t, fe.graph.Type(inode.ID(op2.Entry.Child)), inode.QueryDir)
}

func TestLookupUnknownRootChildIsENOENT(t *testing.T) {
	fe := newTestFrontend(t)
	op := &fuseops.LookUpInodeOp{Parent: fuseops.InodeID(inode.RootID), Name: "nope"}
	err := fe.LookUpInode(context.Background(), op)
	assert.Error(t, err)
}

func TestQueryBooleanSemanticsEndToEnd(t *testing.T) {
	fe := newTestFrontend(t)
	films := map[string]string{
		"/films/Before Sunrise (1995)": "romance",
		"/films/Before Sunset (2004)":  "romance",
		"/films/Heat (1995)":           "crime",
		"/films/Clerks (1994)":         "slice-of-life",
	}
	for path, genre := range films {
		_, err := fe.store.Tag(path, "genre", strp(genre), false)
		require.NoError(t, err)
	}
	_, err := fe.store.Tag("/films/Before Sunrise (1995)", "favourite", nil, false)
	require.NoError(t, err)

	qd := fe.graph.GetOrCreateQueryResultDir(
		`genre=="romance" or not favourite and genre=="crime"`, "q")
	children := fe.materializeQueryResultDir(qd)
	assert.Len(t, children, 3)
}
