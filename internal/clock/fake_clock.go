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

package clock

import "time"

// FakeClock is a Clock that always returns a fixed time, for deterministic
// tests of mount-time stamping.
type FakeClock struct {
	FixedTime time.Time
}

var _ Clock = (*FakeClock)(nil)

// Now returns the fixed time this clock was constructed with.
func (c *FakeClock) Now() time.Time {
	return c.FixedTime
}
