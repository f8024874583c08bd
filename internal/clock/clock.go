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

// Package clock provides an injectable time source, used so that mount-time
// (a value baked into every inode's attributes) and other time-dependent
// behavior can be fixed in tests.
package clock

import "time"

// Clock is the time source the vfs package stamps mount time from.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
