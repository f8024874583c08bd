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

	"github.com/jacobsa/fuse/fuseops"

	"github.com/jamesblissett/tagfs/internal/inode"
)

// ReadSymlink implements spec §4.5.4: the mapping id stored on the Link
// entry is resolved fresh against the tag store on every call, so a
// PrefixChange applied mid-mount is observed immediately without a new
// lookup (spec invariant 8).
func (fe *Frontend) ReadSymlink(ctx context.Context, op *fuseops.ReadSymlinkOp) (err error) {
	defer fe.instrument("readlink", time.Now())(&err)
	fe.mu.Lock()
	defer fe.mu.Unlock()

	mappingID := fe.graph.LinkTarget(inode.ID(op.Inode))
	path, err := fe.store.GetPathFromMappingID(mappingID)
	if err != nil {
		fatalf("ReadSymlink: inode %d: mapping %d: %v", op.Inode, mappingID, err)
	}
	op.Target = path
	return nil
}
