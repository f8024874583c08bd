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

import "fmt"

// translator accumulates bind parameters while it walks an expression tree,
// producing a HAVING-clause fragment that correlates against the outer
// query's grouped tag_mappings.path column (see engine.go). Each subquery
// aliases its own tag_mappings as m, so the unaliased name tag_mappings
// always refers to the outer table. Every tag name and value
// from the query text becomes a bind parameter; none are ever concatenated
// into the SQL text.
//
// caseSensitive governs tag-name matching and the "==" value comparison
// (default case-insensitive, exact when set). The "=" substring operator is
// always case-insensitive regardless of the flag; "<" and ">" always compare
// under the store's default byte ordering.
type translator struct {
	caseSensitive bool
	args          []any
}

func translate(e Expr, caseSensitive bool) (sqlFragment string, args []any) {
	t := &translator{caseSensitive: caseSensitive}
	frag := t.walk(e)
	return frag, t.args
}

func (t *translator) walk(e Expr) string {
	switch n := e.(type) {
	case Atom:
		return t.atom(n)
	case Not:
		return fmt.Sprintf("NOT (%s)", t.walk(n.X))
	case And:
		return fmt.Sprintf("(%s AND %s)", t.walk(n.Left), t.walk(n.Right))
	case Or:
		return fmt.Sprintf("(%s OR %s)", t.walk(n.Left), t.walk(n.Right))
	default:
		panic(fmt.Sprintf("query: translate: unhandled expr type %T", e))
	}
}

func (t *translator) bind(v any) string {
	t.args = append(t.args, v)
	return "?"
}

// tagNameCmp returns the SQL fragment comparing tg.name to a bound tag
// name, honoring caseSensitive.
func (t *translator) tagNameCmp(tag string) string {
	if t.caseSensitive {
		return fmt.Sprintf("tg.name = %s", t.bind(tag))
	}
	return fmt.Sprintf("tg.name = %s COLLATE NOCASE", t.bind(tag))
}

func (t *translator) atom(a Atom) string {
	switch a.Op {
	case OpHas:
		return fmt.Sprintf(
			`EXISTS (SELECT 1 FROM tag_mappings m JOIN tags tg ON tg.id = m.tag_id WHERE m.path = tag_mappings.path AND %s)`,
			t.tagNameCmp(a.Tag))
	case OpExact:
		if t.caseSensitive {
			return fmt.Sprintf(
				`EXISTS (SELECT 1 FROM tag_mappings m JOIN tags tg ON tg.id = m.tag_id WHERE m.path = tag_mappings.path AND %s AND m.value = %s)`,
				t.tagNameCmp(a.Tag), t.bind(a.Value))
		}
		return fmt.Sprintf(
			`EXISTS (SELECT 1 FROM tag_mappings m JOIN tags tg ON tg.id = m.tag_id WHERE m.path = tag_mappings.path AND %s AND m.value = %s COLLATE NOCASE)`,
			t.tagNameCmp(a.Tag), t.bind(a.Value))
	case OpSubstring:
		pattern := "%" + escapeLike(a.Value) + "%"
		return fmt.Sprintf(
			`EXISTS (SELECT 1 FROM tag_mappings m JOIN tags tg ON tg.id = m.tag_id WHERE m.path = tag_mappings.path AND %s AND m.value LIKE %s ESCAPE '\' COLLATE NOCASE)`,
			t.tagNameCmp(a.Tag), t.bind(pattern))
	case OpLess:
		return fmt.Sprintf(
			`EXISTS (SELECT 1 FROM tag_mappings m JOIN tags tg ON tg.id = m.tag_id WHERE m.path = tag_mappings.path AND %s AND m.value < %s)`,
			t.tagNameCmp(a.Tag), t.bind(a.Value))
	case OpGreater:
		return fmt.Sprintf(
			`EXISTS (SELECT 1 FROM tag_mappings m JOIN tags tg ON tg.id = m.tag_id WHERE m.path = tag_mappings.path AND %s AND m.value > %s)`,
			t.tagNameCmp(a.Tag), t.bind(a.Value))
	default:
		panic(fmt.Sprintf("query: translate: unhandled operator %v", a.Op))
	}
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
