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

package store

import "errors"

// ErrDuplicateTag is returned by Tag when the (tag, value, path) uniqueness
// constraint (spec §3) fires for a manual tag call. The autotag variant of
// Tag suppresses this error instead, per spec §4.6.
var ErrDuplicateTag = errors.New("store: path is already tagged with this tag and value")

// ErrValueSymmetry is returned by Tag when a mapping would violate the
// takes-value symmetry rule (spec §3, invariant 5): a tag's first mapping
// fixes whether every future mapping of that tag must carry a value.
var ErrValueSymmetry = errors.New("store: tag value symmetry violated")

// ErrNotTagged is returned by Untag when no mapping matches the given
// (path, tag, value) to remove.
var ErrNotTagged = errors.New("store: path is not tagged with this tag")

// ErrNotFound is returned when a TagInfo, TagMapping, or StoredQuery looked
// up by name/id does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrStoredQueryExists is returned by CreateStoredQuery when the name is
// already taken.
var ErrStoredQueryExists = errors.New("store: a stored query with this name already exists")
