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
	"time"
	"unicode/utf8"

	"github.com/jacobsa/fuse"
	"github.com/jacobsa/fuse/fuseops"

	"github.com/jamesblissett/tagfs/internal/inode"
)

// LookUpInode implements spec §4.5.2. Every branch preloads the resolved
// child's own children (a dry-run readdir) so a kernel that stats a path
// directly, without ever calling readdir on an ancestor, still sees a
// materialized subtree.
func (fe *Frontend) LookUpInode(ctx context.Context, op *fuseops.LookUpInodeOp) (err error) {
	defer fe.instrument("lookup", time.Now())(&err)
	fe.mu.Lock()
	defer fe.mu.Unlock()

	if !utf8.ValidString(op.Name) {
		fatalf("LookUpInode: name %q is not valid UTF-8", op.Name)
	}

	var child inode.ID
	switch {
	case op.Parent == inode.RootID:
		fe.preloadDir(inode.RootID)
		id, ok := fe.resolveRootChild(op.Name)
		if !ok {
			return fuse.ENOENT
		}
		child = id

	case fe.graph.Type(op.Parent) == inode.QueryDir:
		id, ok := fe.lookupQueryResult(op.Name)
		if !ok {
			return fuse.ENOENT
		}
		child = id

	default:
		id, ok := fe.graph.TryGetInode(op.Parent, op.Name)
		if !ok {
			return fuse.ENOENT
		}
		child = id
	}

	fe.preloadDir(child)
	fe.fillEntry(&op.Entry, child)
	return nil
}

// resolveRootChild materializes and returns the root-level child named
// name: one of the two reserved singletons or a tag directory.
func (fe *Frontend) resolveRootChild(name string) (inode.ID, bool) {
	switch name {
	case "?":
		return fe.graph.GetOrCreateQueryDir(), true
	case "tags":
		return fe.graph.GetOrCreateAllTagsDir(), true
	}

	names, err := fe.store.AllTagNames()
	if err != nil {
		fatalf("LookUpInode: AllTagNames: %v", err)
	}
	for _, n := range names {
		if n == name {
			return fe.graph.GetOrCreateTagDir(n), true
		}
	}
	return 0, false
}

// lookupQueryResult treats name as ad-hoc query text and materializes its
// QueryResultDir. The same query text always resolves to the same inode
// (spec §4.5.2).
func (fe *Frontend) lookupQueryResult(text string) (inode.ID, bool) {
	if _, err := fe.store.Query(text, false); err != nil {
		return 0, false
	}
	return fe.graph.GetOrCreateQueryResultDir(text, text), true
}

// fillEntry writes child's attributes into entry with the standard
// entry/attribute TTLs.
func (fe *Frontend) fillEntry(entry *fuseops.ChildInodeEntry, child inode.ID) {
	entry.Child = fuseops.InodeID(child)
	entry.Attributes = toFuseAttr(fe.graph.Attr(child))
	entry.AttributesExpiration = fe.graph.Attr(child).Mtime.Add(entryTTL)
	entry.EntryExpiration = entry.AttributesExpiration
}

// GetInodeAttributes implements spec §4.5.1: a direct graph lookup, fatal
// on an unknown inode.
func (fe *Frontend) GetInodeAttributes(ctx context.Context, op *fuseops.GetInodeAttributesOp) (err error) {
	defer fe.instrument("getattr", time.Now())(&err)
	fe.mu.Lock()
	defer fe.mu.Unlock()

	op.Attributes = toFuseAttr(fe.graph.Attr(inode.ID(op.Inode)))
	op.AttributesExpiration = op.Attributes.Mtime.Add(entryTTL)
	return nil
}

func toFuseAttr(a inode.Attr) fuseops.InodeAttributes {
	return fuseops.InodeAttributes{
		Size:   a.Size,
		Nlink:  a.Nlink,
		Mode:   a.Mode,
		Atime:  a.Atime,
		Mtime:  a.Mtime,
		Ctime:  a.Ctime,
		Crtime: a.Crtime,
		Uid:    a.UID,
		Gid:    a.GID,
	}
}
