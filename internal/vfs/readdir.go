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
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jacobsa/fuse/fuseops"
	"github.com/jacobsa/fuse/fuseutil"

	"github.com/jamesblissett/tagfs/internal/inode"
	"github.com/jamesblissett/tagfs/internal/pathutil"
	"github.com/jamesblissett/tagfs/internal/store"
)

// child is a materialized directory entry, paired with the dirent type the
// kernel expects to see in readdir output.
type child struct {
	id   inode.ID
	name string
	typ  fuseutil.DirentType
}

// OpenDir allows opening any directory; the mount serves no per-handle
// state (spec §5: "the Frontend does not retain per-handle state").
func (fe *Frontend) OpenDir(ctx context.Context, op *fuseops.OpenDirOp) error {
	return nil
}

// ReleaseDirHandle is a no-op for the same reason.
func (fe *Frontend) ReleaseDirHandle(ctx context.Context, op *fuseops.ReleaseDirHandleOp) error {
	return nil
}

// ReadDir implements spec §4.5.3: dispatch on type, honor offset by
// skipping that many items in natural order, and stop cleanly once
// WriteDirent reports the buffer is full.
func (fe *Frontend) ReadDir(ctx context.Context, op *fuseops.ReadDirOp) (err error) {
	defer fe.instrument("readdir", time.Now())(&err)
	fe.mu.Lock()
	defer fe.mu.Unlock()

	children := fe.materialize(op.Inode)

	if int(op.Offset) > len(children) {
		return nil
	}
	children = children[op.Offset:]

	for i, c := range children {
		dirent := fuseutil.Dirent{
			Offset: op.Offset + fuseops.DirOffset(i) + 1,
			Inode:  fuseops.InodeID(c.id),
			Name:   c.name,
			Type:   c.typ,
		}
		n := fuseutil.WriteDirent(op.Dst[op.BytesRead:], dirent)
		if n == 0 {
			break
		}
		op.BytesRead += n
	}
	return nil
}

// preloadDir performs a dry-run readdir: the same materialization side
// effects as ReadDir, with the resulting listing discarded. This is what
// LookUpInode uses to preload a resolved child's own children (spec
// §4.5.2, §4.5.3 "dry-run").
func (fe *Frontend) preloadDir(id inode.ID) {
	fe.materialize(id)
}

// materialize returns id's children in natural order, allocating any
// not-yet-seen inode along the way. It is the single dispatch point shared
// by ReadDir and preloadDir.
func (fe *Frontend) materialize(id inode.ID) []child {
	switch fe.graph.Type(id) {
	case inode.Root:
		return fe.materializeRoot()
	case inode.TagDir:
		return fe.materializeTagDir(id)
	case inode.ValueDir:
		return fe.materializeValueDir(id)
	case inode.QueryDir:
		return fe.materializeQueryDir()
	case inode.QueryResultDir:
		return fe.materializeQueryResultDir(id)
	case inode.AllTagsDir, inode.AllTagsIntermediate:
		return fe.materializeAllTagsLevel(id)
	case inode.AllTagsTerminal, inode.Link:
		return nil
	default:
		fatalf("materialize: inode %d has unhandled type %s", id, fe.graph.Type(id))
		return nil
	}
}

func (fe *Frontend) materializeRoot() []child {
	out := []child{
		{id: fe.graph.GetOrCreateQueryDir(), name: "?", typ: fuseutil.DT_Directory},
		{id: fe.graph.GetOrCreateAllTagsDir(), name: "tags", typ: fuseutil.DT_Directory},
	}
	names, err := fe.store.AllTagNames()
	if err != nil {
		fatalf("materializeRoot: AllTagNames: %v", err)
	}
	for _, name := range names {
		out = append(out, child{id: fe.graph.GetOrCreateTagDir(name), name: name, typ: fuseutil.DT_Directory})
	}
	return out
}

func (fe *Frontend) materializeTagDir(id inode.ID) []child {
	tagName := fe.graph.ParentTag(id)
	info, err := fe.store.TagInfoByName(tagName)
	if err != nil {
		fatalf("materializeTagDir: TagInfoByName(%q): %v", tagName, err)
	}

	if info.TakesValue {
		values, err := fe.store.Values(tagName)
		if err != nil {
			fatalf("materializeTagDir: Values(%q): %v", tagName, err)
		}
		out := make([]child, 0, len(values))
		for _, v := range values {
			display := pathutil.SanitiseValue(v)
			out = append(out, child{
				id:   fe.graph.GetOrCreateValueDir(id, display, v),
				name: display,
				typ:  fuseutil.DT_Directory,
			})
		}
		return out
	}

	mappings, err := fe.store.PathsWithTag(tagName, nil)
	if err != nil {
		fatalf("materializeTagDir: PathsWithTag(%q): %v", tagName, err)
	}
	return fe.materializeLinks(id, mappings)
}

func (fe *Frontend) materializeValueDir(id inode.ID) []child {
	tagName := fe.graph.ParentTag(id)
	rawValue := fe.graph.TagValue(id)
	mappings, err := fe.store.PathsWithTag(tagName, &rawValue)
	if err != nil {
		fatalf("materializeValueDir: PathsWithTag(%q, %q): %v", tagName, rawValue, err)
	}
	return fe.materializeLinks(id, mappings)
}

func (fe *Frontend) materializeQueryDir() []child {
	queries, err := fe.store.StoredQueries()
	if err != nil {
		fatalf("materializeQueryDir: StoredQueries: %v", err)
	}
	out := make([]child, 0, len(queries))
	for _, q := range queries {
		display := fmt.Sprintf("%s @ [%s]", q.Name, q.QueryText)
		id := fe.graph.GetOrCreateQueryResultDir(q.QueryText, display)
		out = append(out, child{id: id, name: fe.graph.Name(id), typ: fuseutil.DT_Directory})
	}
	return out
}

func (fe *Frontend) materializeQueryResultDir(id inode.ID) []child {
	text := fe.graph.Query(id)
	mappings, err := fe.store.Query(text, false)
	if err != nil {
		// An ad-hoc query already accepted at lookup time should never fail to
		// re-run; if it does, the store itself is misbehaving.
		fatalf("materializeQueryResultDir: Query(%q): %v", text, err)
	}
	return fe.materializeLinks(id, mappings)
}

// materializeLinks converts a store-ordered list of path mappings into
// disambiguated Link children, reusing an existing link inode when its
// mapping id still matches (so a kernel that cached an inode id across
// reads keeps seeing the same one).
func (fe *Frontend) materializeLinks(parent inode.ID, mappings []store.PathMapping) []child {
	paths := make([]string, len(mappings))
	for i, m := range mappings {
		paths[i] = m.Path
	}
	names := pathutil.Disambiguate(paths)

	out := make([]child, 0, len(mappings))
	for i, m := range mappings {
		name := names[i]
		id, ok := fe.graph.TryGetLinkInode(parent, name, m.MappingID)
		if !ok {
			id = fe.graph.CreateLink(parent, name, m.MappingID, uint64(len(m.Path)))
		}
		out = append(out, child{id: id, name: name, typ: fuseutil.DT_Link})
	}
	return out
}

// materializeAllTagsLevel expands one level of the "/tags" path mirror
// (spec §4.5.3): every stored path sharing this inode's accumulated prefix
// is split at the next "/", producing AllTagsIntermediate children for
// paths with more components to go and AllTagsTerminal children otherwise.
func (fe *Frontend) materializeAllTagsLevel(id inode.ID) []child {
	prefix := ""
	if fe.graph.Type(id) == inode.AllTagsIntermediate {
		prefix = fe.graph.OriginalPath(id)
	}

	paths, err := fe.store.PathsWithPrefix(prefix)
	if err != nil {
		fatalf("materializeAllTagsLevel: PathsWithPrefix(%q): %v", prefix, err)
	}

	type next struct {
		name       string
		fullPath   string
		isTerminal bool
	}
	seen := make(map[string]next)
	var order []string
	for _, pm := range paths {
		rest := pm.Path[len(prefix):]
		if prefix != "" && rest != "" && rest[0] != '/' {
			// "/mydir/f" shares the string prefix "/my" but lies outside it.
			continue
		}
		skip := 0
		if len(rest) > 0 && rest[0] == '/' {
			skip = 1
		}
		rest = rest[skip:]
		if rest == "" {
			continue
		}
		idx := strings.IndexByte(rest, '/')
		if idx < 0 {
			key := rest + ".tags"
			if _, ok := seen[key]; !ok {
				seen[key] = next{name: key, fullPath: pm.Path, isTerminal: true}
				order = append(order, key)
			}
			continue
		}
		key := rest[:idx]
		if _, ok := seen[key]; !ok {
			// Slice the original path rather than reconcatenating prefix+key, so
			// the accumulated prefix always matches a real path's separators
			// exactly (paths are not required to share a leading "/" convention).
			fullPath := pm.Path[:len(prefix)+skip+idx]
			seen[key] = next{name: key, fullPath: fullPath, isTerminal: false}
			order = append(order, key)
		}
	}
	sort.Strings(order)

	out := make([]child, 0, len(order))
	for _, key := range order {
		n := seen[key]
		if n.isTerminal {
			out = append(out, child{
				id:   fe.graph.GetOrCreateAllTagsTerminal(id, n.name, n.fullPath),
				name: n.name,
				typ:  fuseutil.DT_File,
			})
		} else {
			out = append(out, child{
				id:   fe.graph.GetOrCreateAllTagsIntermediate(id, n.name, n.fullPath),
				name: n.name,
				typ:  fuseutil.DT_Directory,
			})
		}
	}
	return out
}
