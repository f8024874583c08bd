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

// Package store implements the tag-store contract the filesystem frontend
// depends on: TagInfo/TagMapping/StoredQuery persistence, the takes-value
// symmetry and uniqueness rules of spec §3, and the primitive operations
// listed in spec §4.6. Grounded on the pack's database/sql + modernc.org/
// sqlite idiom (see the agentic-research/mache and cfagiani/cotfs reference
// files: both drive a FUSE-adjacent filesystem off a plain *sql.DB).
package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// Store is a handle on the backing sqlite database. It is exclusive to one
// mount process for the duration of the mount (spec §5): nothing here
// synchronizes across processes beyond what sqlite itself guarantees.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the tag store at path, initializes the
// schema, enables foreign-key enforcement, and installs the orphan-tag
// trigger.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// The tag store is read/written by a single process at a time (spec §5),
	// so there is no benefit to a connection pool and some risk sqlite's
	// per-connection PRAGMAs (foreign_keys below) silently stop applying to
	// a second connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AllPathsValid is an optional pre-mount diagnostic: it reports whether
// every distinct path currently in the store exists on the real filesystem.
// It is not consulted by the mount itself (spec §3: "the store does not
// verify they exist"); it exists purely so a CLI subcommand can warn about
// dangling symlinks before mounting.
func (s *Store) AllPathsValid() (ok bool, missing []string, err error) {
	rows, err := s.db.Query(`SELECT DISTINCT path FROM tag_mappings ORDER BY id`)
	if err != nil {
		return false, nil, fmt.Errorf("store: AllPathsValid: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return false, nil, fmt.Errorf("store: AllPathsValid: scan: %w", err)
		}
		if _, statErr := os.Lstat(path); statErr != nil {
			missing = append(missing, path)
		}
	}
	if err := rows.Err(); err != nil {
		return false, nil, fmt.Errorf("store: AllPathsValid: %w", err)
	}
	return len(missing) == 0, missing, nil
}
