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
	"strings"
	"time"

	"github.com/jacobsa/fuse/fuseops"

	"github.com/jamesblissett/tagfs/internal/inode"
)

// OpenFile is permitted only on AllTagsTerminal nodes (spec §4.5.5): the
// ".tags" mirror files. No per-handle state is kept; ReadFile recomputes
// the content on every call.
func (fe *Frontend) OpenFile(ctx context.Context, op *fuseops.OpenFileOp) (err error) {
	defer fe.instrument("open", time.Now())(&err)
	fe.mu.Lock()
	defer fe.mu.Unlock()

	if fe.graph.Type(inode.ID(op.Inode)) != inode.AllTagsTerminal {
		fatalf("OpenFile: inode %d is a %s, not AllTagsTerminal", op.Inode, fe.graph.Type(inode.ID(op.Inode)))
	}
	return nil
}

// ReadFile implements spec §4.5.6: the path's current tag mappings,
// formatted one per line ("tag\n" or "tag=value\n") in store insertion
// order, sliced to the caller's offset and buffer size.
func (fe *Frontend) ReadFile(ctx context.Context, op *fuseops.ReadFileOp) (err error) {
	defer fe.instrument("read", time.Now())(&err)
	fe.mu.Lock()
	defer fe.mu.Unlock()

	id := inode.ID(op.Inode)
	if fe.graph.Type(id) != inode.AllTagsTerminal {
		fatalf("ReadFile: inode %d is a %s, not AllTagsTerminal", op.Inode, fe.graph.Type(id))
	}

	originalPath := fe.graph.OriginalPath(id)
	mappings, err := fe.store.TagsForPath(originalPath)
	if err != nil {
		fatalf("ReadFile: TagsForPath(%q): %v", originalPath, err)
	}

	var sb strings.Builder
	for _, m := range mappings {
		sb.WriteString(m.Tag.Name)
		if m.Value != nil {
			sb.WriteByte('=')
			sb.WriteString(*m.Value)
		}
		sb.WriteByte('\n')
	}
	contents := sb.String()

	if op.Offset >= int64(len(contents)) {
		op.BytesRead = 0
		return nil
	}
	op.BytesRead = copy(op.Dst, contents[op.Offset:])
	return nil
}
