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

package inode

// ID is an inode identifier. It has no meaning beyond the mount that
// allocated it.
type ID uint64

// RootID is the fixed inode id of the root directory. FUSE itself reserves
// this value; every other id must be strictly greater.
const RootID ID = 1

// Allocator hands out strictly monotonically increasing inode ids, starting
// just above RootID. It is not safe for concurrent use; callers serialize
// access the same way they serialize all other EntryGraph mutations (see
// package vfs).
type Allocator struct {
	next ID
}

// NewAllocator returns an Allocator whose first Next() call yields
// RootID+1.
func NewAllocator() *Allocator {
	return &Allocator{next: RootID + 1}
}

// Next returns the next inode id in the sequence.
func (a *Allocator) Next() ID {
	id := a.next
	a.next++
	return id
}
