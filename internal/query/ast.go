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

package query

// Operator identifies how an atom's value, if any, constrains a match.
type Operator int

const (
	// OpHas matches any mapping of the tag regardless of value: a bare
	// "tag" atom.
	OpHas Operator = iota
	// OpExact matches the value exactly: "tag==value". Case-insensitive by
	// default; exact byte comparison when the query's case-sensitive flag
	// is set.
	OpExact
	// OpSubstring matches values containing value as a substring, always
	// case-insensitively regardless of the query's case-sensitive flag:
	// "tag=value".
	OpSubstring
	// OpLess and OpGreater compare values under the store's default byte
	// ordering: "tag<value", "tag>value". Lexical, not numeric; see
	// DESIGN.md for the open-question resolution.
	OpLess
	OpGreater
)

// Expr is a node in a parsed query's expression tree.
type Expr interface {
	isExpr()
}

// Atom matches paths carrying Tag, optionally constrained on Value by Op.
type Atom struct {
	Tag   string
	Op    Operator
	Value string
}

// Not matches paths that do not satisfy X.
type Not struct{ X Expr }

// And matches paths satisfying both Left and Right.
type And struct{ Left, Right Expr }

// Or matches paths satisfying either Left or Right.
type Or struct{ Left, Right Expr }

func (Atom) isExpr() {}
func (Not) isExpr()  {}
func (And) isExpr()  {}
func (Or) isExpr()   {}
