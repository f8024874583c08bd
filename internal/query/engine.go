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

import (
	"database/sql"
	"fmt"
)

// Result is one path matched by a query, paired with a representative
// mapping id (the lowest id among all of that path's mappings), which link
// entries use to resolve back to the real path via the store.
type Result struct {
	Path      string
	MappingID int64
}

// Run lexes, parses, and executes text against db, returning every distinct
// path it matches in ascending mapping-id order, i.e. the order the
// matching paths were first tagged. caseSensitive governs tag-name matching
// and the exact ("==") operator; the substring ("=") operator is always
// case-insensitive and "<"/">" always compare under the store's default
// byte ordering.
func Run(db *sql.DB, text string, caseSensitive bool) ([]Result, error) {
	expr, err := Parse(text)
	if err != nil {
		return nil, err
	}
	having, args := translate(expr, caseSensitive)

	stmt := fmt.Sprintf(`
		SELECT path, MIN(id) AS id
		FROM tag_mappings
		GROUP BY path
		HAVING %s
		ORDER BY id`, having)

	rows, err := db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query: executing %q: %w", text, err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Path, &r.MappingID); err != nil {
			return nil, fmt.Errorf("query: scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
