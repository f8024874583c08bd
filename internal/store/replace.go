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

// Mapping is one (path, tag, value, auto) triple as recovered from an
// ingested edit-representation dump (see package editrepr).
type Mapping struct {
	Path  string
	Tag   string
	Value *string
	Auto  bool
}

// ReplaceAll atomically discards every tag and mapping currently in the
// store and re-inserts mappings in order, recreating each tag's
// takes-value-ness from the first mapping that uses it. It is the backing
// primitive for the edit round-trip (spec §6.5: "ingestion validates the
// whole file before clearing the store and re-inserting"); callers are
// expected to have already validated the input (editrepr.Parse succeeding)
// before calling this. Everything runs in one transaction: on any failure
// it is rolled back and the store keeps its previous contents.
func (s *Store) ReplaceAll(mappings []Mapping) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: ReplaceAll: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tag_mappings`); err != nil {
		return fmt.Errorf("store: ReplaceAll: clearing mappings: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tags`); err != nil {
		return fmt.Errorf("store: ReplaceAll: clearing tags: %w", err)
	}

	tagIDs := make(map[string]int64)
	tagTakesValue := make(map[string]bool)
	for _, m := range mappings {
		takesValue := m.Value != nil
		if existing, ok := tagTakesValue[m.Tag]; ok && existing != takesValue {
			return fmt.Errorf("store: ReplaceAll: tag %q used both with and without a value", m.Tag)
		}
		tagTakesValue[m.Tag] = takesValue

		tagID, ok := tagIDs[m.Tag]
		if !ok {
			res, err := tx.Exec(`INSERT INTO tags (name, takes_value) VALUES (?, ?)`, m.Tag, boolToInt(takesValue))
			if err != nil {
				return fmt.Errorf("store: ReplaceAll: creating tag %q: %w", m.Tag, err)
			}
			tagID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("store: ReplaceAll: %w", err)
			}
			tagIDs[m.Tag] = tagID
		}

		if _, err := tx.Exec(`INSERT INTO tag_mappings (path, tag_id, value, auto) VALUES (?, ?, ?, ?)`,
			m.Path, tagID, m.Value, boolToInt(m.Auto)); err != nil {
			return fmt.Errorf("store: ReplaceAll: inserting mapping for %q: %w", m.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: ReplaceAll: commit: %w", err)
	}
	return nil
}
