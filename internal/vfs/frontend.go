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

// Package vfs implements the FUSE callback surface: it is the
// FilesystemFrontend that orchestrates an inode.Graph against a store.Store
// and the query package, the way roloopbackfs.go orchestrates its inode map
// against the real filesystem in the reference tree. Every method here
// embeds fuseutil.NotImplementedFileSystem and overrides only the read path
// (getattr/lookup/readdir/readlink/open/read); the mount is read-only by
// construction, so mutating ops are never implemented.
package vfs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jacobsa/fuse/fuseutil"

	"github.com/jamesblissett/tagfs/internal/clock"
	"github.com/jamesblissett/tagfs/internal/inode"
	"github.com/jamesblissett/tagfs/internal/logger"
	"github.com/jamesblissett/tagfs/internal/store"
)

// entryTTL is the attribute/entry cache lifetime handed back to the kernel
// on every lookup and getattr.
const entryTTL = 1 * time.Second

// Frontend is the stateful file system. jacobsa/fuse dispatches callbacks on
// their own goroutines (unlike the strictly single-threaded driver spec §5
// describes), so Frontend serializes access to the EntryGraph/TagStore pair
// itself with mu, the Go analogue of the teacher's fs.mu: only one callback
// observes or mutates that logical state at a time. It must be wrapped with
// fuseutil.NewFileSystemServer before being passed to fuse.Mount.
type Frontend struct {
	fuseutil.NotImplementedFileSystem

	mu    sync.Mutex
	graph *inode.Graph
	store *store.Store
}

// New constructs a Frontend over an already-open store, stamping every
// synthetic node's timestamps with clk.Now() (the lazy "mount time"
// singleton of spec §9, threaded through explicitly instead of held as a
// package global). Tests pass a clock.FakeClock so the resulting attrs are
// deterministic; cmd/mount.go passes clock.RealClock{}.
func New(st *store.Store, clk clock.Clock) *Frontend {
	return &Frontend{
		graph: inode.NewGraph(clk.Now()),
		store: st,
	}
}

// fatalf terminates the process with a diagnostic, per spec §7: these call
// sites only fire on invariant violations in the core itself (an inode with
// no backing store row, a wrong-variant accessor), never on malformed input
// from the kernel or the tag store.
func fatalf(format string, args ...any) {
	logger.Fatal(context.Background(), "vfs: fatal: "+fmt.Sprintf(format, args...))
}
