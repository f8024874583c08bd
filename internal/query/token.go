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

// Package query implements the ad-hoc boolean query language evaluated
// against the tag store: lexing, parsing into an expression tree, and
// translation into a parameterized SQL predicate. No string interpolation
// ever reaches the database; every literal travels as a bind parameter.
package query

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokEqEq
	tokEq
	tokLt
	tokGt
)

type token struct {
	kind tokenKind
	text string
}

func (t token) String() string {
	return fmt.Sprintf("%v(%q)", t.kind, t.text)
}
