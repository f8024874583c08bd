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

import "fmt"

// AllMappings returns every mapping in the store, ordered by path and then
// by id within a path. It is the bulk counterpart to TagsForPath, used by
// the edit round-trip to serialize the whole store to text.
func (s *Store) AllMappings() ([]TagMapping, error) {
	rows, err := s.db.Query(`
		SELECT m.id, m.path, m.value, m.auto, t.id, t.name, t.takes_value
		FROM tag_mappings m
		JOIN tags t ON t.id = m.tag_id
		ORDER BY m.path, m.id`)
	if err != nil {
		return nil, fmt.Errorf("store: AllMappings: %w", err)
	}
	defer rows.Close()

	var out []TagMapping
	for rows.Next() {
		var m TagMapping
		var takesValue int
		if err := rows.Scan(&m.ID, &m.Path, &m.Value, &m.Auto, &m.Tag.ID, &m.Tag.Name, &takesValue); err != nil {
			return nil, fmt.Errorf("store: AllMappings: scan: %w", err)
		}
		m.Tag.TakesValue = takesValue != 0
		out = append(out, m)
	}
	return out, rows.Err()
}
