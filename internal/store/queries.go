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

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jamesblissett/tagfs/internal/query"
)

// Query evaluates text against the store and returns every matching path
// together with a representative mapping id, in ascending mapping-id
// (insertion) order. caseSensitive governs tag-name matching and the exact
// operator; see package query for the full grammar.
func (s *Store) Query(text string, caseSensitive bool) ([]PathMapping, error) {
	results, err := query.Run(s.db, text, caseSensitive)
	if err != nil {
		return nil, err
	}
	out := make([]PathMapping, len(results))
	for i, r := range results {
		out[i] = PathMapping{Path: r.Path, MappingID: r.MappingID}
	}
	return out, nil
}

// StoredQueries returns every saved query, in ascending id order.
func (s *Store) StoredQueries() ([]StoredQuery, error) {
	rows, err := s.db.Query(`SELECT name, query FROM stored_queries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: StoredQueries: %w", err)
	}
	defer rows.Close()

	var out []StoredQuery
	for rows.Next() {
		var q StoredQuery
		if err := rows.Scan(&q.Name, &q.QueryText); err != nil {
			return nil, fmt.Errorf("store: StoredQueries: scan: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// StoredQueryByName looks up a single saved query. Returns ErrNotFound if
// name is not saved.
func (s *Store) StoredQueryByName(name string) (StoredQuery, error) {
	var q StoredQuery
	err := s.db.QueryRow(`SELECT name, query FROM stored_queries WHERE name = ?`, name).
		Scan(&q.Name, &q.QueryText)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredQuery{}, ErrNotFound
	}
	if err != nil {
		return StoredQuery{}, fmt.Errorf("store: StoredQueryByName(%q): %w", name, err)
	}
	return q, nil
}

// CreateStoredQuery saves queryText under name. Returns ErrStoredQueryExists
// if the name is already taken.
func (s *Store) CreateStoredQuery(name, queryText string) error {
	_, err := s.db.Exec(`INSERT INTO stored_queries (name, query) VALUES (?, ?)`, name, queryText)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return ErrStoredQueryExists
		}
		return fmt.Errorf("store: CreateStoredQuery(%q): %w", name, err)
	}
	return nil
}

// DeleteStoredQuery removes a saved query. Returns ErrNotFound if name does
// not exist.
func (s *Store) DeleteStoredQuery(name string) error {
	res, err := s.db.Exec(`DELETE FROM stored_queries WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: DeleteStoredQuery(%q): %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteStoredQuery(%q): %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueConstraintErr reports whether err is a sqlite UNIQUE constraint
// violation. modernc.org/sqlite does not export a typed error for this, so
// callers match on the driver's message text, the same way the pack's other
// sqlite-backed stores do.
func isUniqueConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
