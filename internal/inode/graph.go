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

// Package inode implements the in-memory synthetic namespace: the
// inode → entry map and the (parent, name) → child index that the FUSE
// frontend materializes lazily in response to lookup/readdir calls.
//
// Following the teacher's split between an inode.Inode's "constant data"
// and "mutable state" (see fs/inode/symlink.go in the reference tree), the
// Graph owns all entries directly rather than handing out per-node locks:
// tagfs is single-threaded per spec, so there is nothing to protect beyond
// what the frontend already serializes.
package inode

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultUID = 1000
	defaultGID = 1000
)

const (
	queryDirName   = "?"
	allTagsDirName = "tags"
)

type childKey struct {
	parent ID
	name   string
}

// Graph owns every Entry in the synthetic tree. It is not safe for
// concurrent use; callers (package vfs) serialize access.
type Graph struct {
	alloc     *Allocator
	inodes    map[ID]*entry
	children  map[childKey]ID
	mountTime time.Time

	queryDirID   ID // 0 until first materialized
	allTagsDirID ID // 0 until first materialized
}

// NewGraph constructs a Graph with only the root entry present, stamping
// every future attribute with mountTime (spec's "lazy singleton ... MountTime
// constant", here passed in explicitly rather than held as a package-level
// global so that multiple mounts in the same test process never share
// state).
func NewGraph(mountTime time.Time) *Graph {
	g := &Graph{
		alloc:     NewAllocator(),
		inodes:    make(map[ID]*entry),
		children:  make(map[childKey]ID),
		mountTime: mountTime,
	}
	g.ensureRoot()
	return g
}

func (g *Graph) ensureRoot() {
	g.inodes[RootID] = &entry{
		id:   RootID,
		typ:  Root,
		attr: g.dirAttr(),
	}
}

func (g *Graph) dirAttr() Attr {
	return Attr{
		Mode:      dirMode,
		Nlink:     1,
		UID:       defaultUID,
		GID:       defaultGID,
		Atime:     g.mountTime,
		Mtime:     g.mountTime,
		Ctime:     g.mountTime,
		Crtime:    g.mountTime,
		BlockSize: 512,
	}
}

func (g *Graph) symlinkAttr(targetSize uint64) Attr {
	a := g.dirAttr()
	a.Mode = symlinkMode
	a.Size = targetSize
	return a
}

func (g *Graph) terminalAttr() Attr {
	a := g.dirAttr()
	a.Mode = terminalMode
	// Conservative advertised size; the real bytes are produced on read (see
	// package vfs).
	a.Size = 512
	return a
}

func (g *Graph) insert(e *entry) ID {
	g.inodes[e.id] = e
	g.children[childKey{e.parent, e.name}] = e.id
	return e.id
}

// TryGetInode returns the child of parent named name, if materialized.
func (g *Graph) TryGetInode(parent ID, name string) (ID, bool) {
	id, ok := g.children[childKey{parent, name}]
	return id, ok
}

// TryGetLinkInode returns the child of parent named name only if it is a
// Link entry whose mapping id matches. This is what keeps a stale link
// (exposed under a since-renamed mapping) from being reused: the frontend
// must allocate a fresh Link in that case.
func (g *Graph) TryGetLinkInode(parent ID, name string, mappingID int64) (ID, bool) {
	id, ok := g.TryGetInode(parent, name)
	if !ok {
		return 0, false
	}
	e := g.inodes[id]
	if e.typ != Link || e.mappingID != mappingID {
		return 0, false
	}
	return id, true
}

// GetOrCreateQueryDir returns the singleton "/?" directory, creating it on
// first call.
func (g *Graph) GetOrCreateQueryDir() ID {
	if g.queryDirID != 0 {
		return g.queryDirID
	}
	if id, ok := g.TryGetInode(RootID, queryDirName); ok {
		g.queryDirID = id
		return id
	}
	id := g.alloc.Next()
	g.queryDirID = g.insert(&entry{id: id, typ: QueryDir, parent: RootID, name: queryDirName, attr: g.dirAttr()})
	return g.queryDirID
}

// GetOrCreateAllTagsDir returns the singleton "/tags" directory, creating it
// on first call.
func (g *Graph) GetOrCreateAllTagsDir() ID {
	if g.allTagsDirID != 0 {
		return g.allTagsDirID
	}
	if id, ok := g.TryGetInode(RootID, allTagsDirName); ok {
		g.allTagsDirID = id
		return id
	}
	id := g.alloc.Next()
	g.allTagsDirID = g.insert(&entry{id: id, typ: AllTagsDir, parent: RootID, name: allTagsDirName, attr: g.dirAttr()})
	return g.allTagsDirID
}

// GetOrCreateTagDir returns the "/<name>" directory for a tag, a child of
// Root by convention.
func (g *Graph) GetOrCreateTagDir(name string) ID {
	if id, ok := g.TryGetInode(RootID, name); ok {
		return id
	}
	id := g.alloc.Next()
	return g.insert(&entry{id: id, typ: TagDir, parent: RootID, name: name, tagName: name, attr: g.dirAttr()})
}

// GetOrCreateValueDir returns the "/<tag>/<value>" directory, capturing the
// parent tag's name at creation time (so later accessors don't need to walk
// back up the tree).
func (g *Graph) GetOrCreateValueDir(parentTagDir ID, displayName, rawValue string) ID {
	if id, ok := g.TryGetInode(parentTagDir, displayName); ok {
		return id
	}
	parent := g.mustGet(parentTagDir)
	if parent.typ != TagDir {
		panic(fmt.Sprintf("inode: GetOrCreateValueDir: parent %d is a %s, not a TagDir", parentTagDir, parent.typ))
	}
	id := g.alloc.Next()
	return g.insert(&entry{
		id: id, typ: ValueDir, parent: parentTagDir, name: displayName,
		tagName: parent.tagName, rawValue: rawValue, attr: g.dirAttr(),
	})
}

// GetOrCreateQueryResultDir returns the result directory for an ad-hoc or
// stored query, keyed by its raw query text: the same query string always
// resolves to the same inode (spec §4.5.2 observation). If a different
// query text already occupies displayName (a stored query renamed without
// its text changing, or an ad-hoc text that happens to collide with a
// "name @ [text]" display string), the new entry is given a short uuid
// suffix so both remain independently listed rather than one silently
// aliasing the other; callers should use Name(id) for what to display, not
// the displayName they passed in.
func (g *Graph) GetOrCreateQueryResultDir(queryText, displayName string) ID {
	parent := g.GetOrCreateQueryDir()
	name := displayName
	if id, ok := g.TryGetInode(parent, name); ok {
		if e := g.inodes[id]; e.rawQuery == queryText {
			return id
		}
		// Reuse a suffixed entry an earlier call created for this same text.
		for _, e := range g.inodes {
			if e.typ == QueryResultDir && e.parent == parent && e.rawQuery == queryText &&
				len(e.name) == len(displayName)+9 && strings.HasPrefix(e.name, displayName+".") {
				return e.id
			}
		}
		name = displayName + "." + uuid.NewString()[:8]
	}
	id := g.alloc.Next()
	return g.insert(&entry{
		id: id, typ: QueryResultDir, parent: parent, name: name,
		rawQuery: queryText, attr: g.dirAttr(),
	})
}

// GetOrCreateAllTagsIntermediate returns an interior directory of the "/tags"
// path mirror. If a non-directory child already occupies name (the
// terminal-vs-intermediate decision is the caller's, per spec §4.2), a fresh
// directory id is allocated rather than reusing the file's inode.
func (g *Graph) GetOrCreateAllTagsIntermediate(parent ID, name, originalPathPrefix string) ID {
	if id, ok := g.TryGetInode(parent, name); ok {
		if e := g.inodes[id]; e.typ == AllTagsIntermediate || e.typ == AllTagsDir {
			return id
		}
	}
	id := g.alloc.Next()
	return g.insert(&entry{
		id: id, typ: AllTagsIntermediate, parent: parent, name: name,
		originalPath: originalPathPrefix, attr: g.dirAttr(),
	})
}

// GetOrCreateAllTagsTerminal returns the "<basename>.tags" leaf of the path
// mirror. Mirrors GetOrCreateAllTagsIntermediate's collision rule.
func (g *Graph) GetOrCreateAllTagsTerminal(parent ID, name, originalPath string) ID {
	if id, ok := g.TryGetInode(parent, name); ok {
		if e := g.inodes[id]; e.typ == AllTagsTerminal {
			return id
		}
	}
	id := g.alloc.Next()
	return g.insert(&entry{
		id: id, typ: AllTagsTerminal, parent: parent, name: name,
		originalPath: originalPath, attr: g.terminalAttr(),
	})
}

// CreateLink unconditionally allocates a new Link entry. Callers that want
// de-duplication must first consult TryGetLinkInode: Link is the one entry
// kind the graph does not idempotently reuse on its own, because a caller
// may legitimately want a second link with the same name once a mapping has
// been replaced.
func (g *Graph) CreateLink(parent ID, name string, mappingID int64, targetSize uint64) ID {
	id := g.alloc.Next()
	return g.insert(&entry{
		id: id, typ: Link, parent: parent, name: name,
		mappingID: mappingID, attr: g.symlinkAttr(targetSize),
	})
}

func (g *Graph) mustGet(id ID) *entry {
	e, ok := g.inodes[id]
	if !ok {
		panic(fmt.Sprintf("inode: unknown inode %d", id))
	}
	return e
}

func (g *Graph) mustGetType(id ID, want Type) *entry {
	e := g.mustGet(id)
	if e.typ != want {
		panic(fmt.Sprintf("inode: inode %d is a %s, not a %s", id, e.typ, want))
	}
	return e
}

// Attr returns the fixed attributes of id. Fatal on an unknown id: per spec
// §7 this is a programming error, never a runtime condition.
func (g *Graph) Attr(id ID) Attr {
	return g.mustGet(id).attr
}

// Name returns the basename id was created with ("" for Root).
func (g *Graph) Name(id ID) string {
	return g.mustGet(id).name
}

// Type returns id's variant.
func (g *Graph) Type(id ID) Type {
	return g.mustGet(id).typ
}

// Parent returns id's parent inode. Fatal for Root, which has none.
func (g *Graph) Parent(id ID) ID {
	e := g.mustGet(id)
	if e.id == RootID {
		panic("inode: Root has no parent")
	}
	return e.parent
}

// ParentTag returns the tag name captured by a TagDir or ValueDir at
// creation time.
func (g *Graph) ParentTag(id ID) string {
	e := g.mustGet(id)
	if e.typ != TagDir && e.typ != ValueDir {
		panic(fmt.Sprintf("inode: ParentTag: inode %d is a %s", id, e.typ))
	}
	return e.tagName
}

// TagValue returns the raw (unescaped) value of a ValueDir, exactly as
// stored, for use as a query parameter against the tag store.
func (g *Graph) TagValue(id ID) string {
	return g.mustGetType(id, ValueDir).rawValue
}

// LinkTarget returns the mapping id a Link entry refers to.
func (g *Graph) LinkTarget(id ID) int64 {
	return g.mustGetType(id, Link).mappingID
}

// Query returns the raw query text of a QueryResultDir.
func (g *Graph) Query(id ID) string {
	return g.mustGetType(id, QueryResultDir).rawQuery
}

// OriginalPath returns the accumulated original-path prefix of an
// AllTagsIntermediate, or the full original path of an AllTagsTerminal.
func (g *Graph) OriginalPath(id ID) string {
	e := g.mustGet(id)
	if e.typ != AllTagsIntermediate && e.typ != AllTagsTerminal && e.typ != AllTagsDir {
		panic(fmt.Sprintf("inode: OriginalPath: inode %d is a %s", id, e.typ))
	}
	return e.originalPath
}
