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
	"unicode/utf8"
)

// AllTagNames returns every tag currently in use, in ascending id order
// (spec invariant 1: insertion order is stable).
func (s *Store) AllTagNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: AllTagNames: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: AllTagNames: scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TagInfoByName looks up a tag by name. It returns ErrNotFound if no such
// tag has ever been created, or has been orphan-eliminated.
func (s *Store) TagInfoByName(name string) (TagInfo, error) {
	var info TagInfo
	var takesValue int
	err := s.db.QueryRow(`SELECT id, name, takes_value FROM tags WHERE name = ?`, name).
		Scan(&info.ID, &info.Name, &takesValue)
	if errors.Is(err, sql.ErrNoRows) {
		return TagInfo{}, ErrNotFound
	}
	if err != nil {
		return TagInfo{}, fmt.Errorf("store: TagInfoByName(%q): %w", name, err)
	}
	info.TakesValue = takesValue != 0
	return info, nil
}

// Values returns the distinct values ever recorded against a value-taking
// tag, in the order they were first mapped.
func (s *Store) Values(tagName string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT m.value
		FROM tag_mappings m
		JOIN tags t ON t.id = m.tag_id
		WHERE t.name = ? AND m.value IS NOT NULL
		GROUP BY m.value
		ORDER BY MIN(m.id)`, tagName)
	if err != nil {
		return nil, fmt.Errorf("store: Values(%q): %w", tagName, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("store: Values(%q): scan: %w", tagName, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// PathsWithTag returns every mapping of tagName, optionally filtered to a
// single value. A nil value matches mappings with no value; to match every
// value regardless, callers should use a query instead.
func (s *Store) PathsWithTag(tagName string, value *string) ([]PathMapping, error) {
	var rows *sql.Rows
	var err error
	if value == nil {
		rows, err = s.db.Query(`
			SELECT m.path, m.id
			FROM tag_mappings m
			JOIN tags t ON t.id = m.tag_id
			WHERE t.name = ? AND m.value IS NULL
			ORDER BY m.id`, tagName)
	} else {
		rows, err = s.db.Query(`
			SELECT m.path, m.id
			FROM tag_mappings m
			JOIN tags t ON t.id = m.tag_id
			WHERE t.name = ? AND m.value = ?
			ORDER BY m.id`, tagName, *value)
	}
	if err != nil {
		return nil, fmt.Errorf("store: PathsWithTag(%q): %w", tagName, err)
	}
	defer rows.Close()
	return scanPathMappings(rows)
}

// PathsWithPrefix returns every mapping whose path begins with prefix,
// across all tags, in ascending id order. Used by the vfs "/tags" path
// mirror to list the paths below one of its directories.
func (s *Store) PathsWithPrefix(prefix string) ([]PathMapping, error) {
	// LIKE narrows the scan but is ASCII case-insensitive; the substr
	// comparison makes the prefix match exact.
	rows, err := s.db.Query(`
		SELECT path, id FROM tag_mappings
		WHERE path LIKE ? ESCAPE '\' AND substr(path, 1, ?) = ?
		ORDER BY id`,
		likePrefix(prefix), utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("store: PathsWithPrefix(%q): %w", prefix, err)
	}
	defer rows.Close()
	return scanPathMappings(rows)
}

// GetPathFromMappingID resolves the real path a Link entry's stable mapping
// id refers to. Returns ErrNotFound if the mapping has been removed.
func (s *Store) GetPathFromMappingID(id int64) (string, error) {
	var path string
	err := s.db.QueryRow(`SELECT path FROM tag_mappings WHERE id = ?`, id).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: GetPathFromMappingID(%d): %w", id, err)
	}
	return path, nil
}

// TagsForPath returns every mapping currently applied to path.
func (s *Store) TagsForPath(path string) ([]TagMapping, error) {
	rows, err := s.db.Query(`
		SELECT m.id, m.path, m.value, m.auto, t.id, t.name, t.takes_value
		FROM tag_mappings m
		JOIN tags t ON t.id = m.tag_id
		WHERE m.path = ?
		ORDER BY m.id`, path)
	if err != nil {
		return nil, fmt.Errorf("store: TagsForPath(%q): %w", path, err)
	}
	defer rows.Close()

	var out []TagMapping
	for rows.Next() {
		var m TagMapping
		var takesValue int
		if err := rows.Scan(&m.ID, &m.Path, &m.Value, &m.Auto, &m.Tag.ID, &m.Tag.Name, &takesValue); err != nil {
			return nil, fmt.Errorf("store: TagsForPath(%q): scan: %w", path, err)
		}
		m.Tag.TakesValue = takesValue != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// Tag applies tagName (optionally with value) to path, creating the Tag
// record on first use. auto marks the mapping as machine-derived (spec
// §4.6: autotagged mappings are exempt from the duplicate-mapping error,
// since re-running the same heuristic is expected to be a no-op).
//
// Returns ErrValueSymmetry if tagName already exists with the opposite
// value-taking-ness, and ErrDuplicateTag if the exact (tag, value, path)
// triple already exists and auto is false.
func (s *Store) Tag(path, tagName string, value *string, auto bool) (mappingID int64, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: Tag: begin: %w", err)
	}
	defer tx.Rollback()

	var tagID int64
	var takesValue int
	err = tx.QueryRow(`SELECT id, takes_value FROM tags WHERE name = ?`, tagName).Scan(&tagID, &takesValue)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, insErr := tx.Exec(`INSERT INTO tags (name, takes_value) VALUES (?, ?)`, tagName, boolToInt(value != nil))
		if insErr != nil {
			return 0, fmt.Errorf("store: Tag: creating tag %q: %w", tagName, insErr)
		}
		tagID, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("store: Tag: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("store: Tag: looking up tag %q: %w", tagName, err)
	default:
		if (takesValue != 0) != (value != nil) {
			return 0, ErrValueSymmetry
		}
	}

	if !auto {
		var existing int
		checkErr := tx.QueryRow(`
			SELECT 1 FROM tag_mappings
			WHERE tag_id = ? AND path = ? AND value_uniq = ?`,
			tagID, path, normalizeValue(value)).Scan(&existing)
		if checkErr == nil {
			return 0, ErrDuplicateTag
		}
		if !errors.Is(checkErr, sql.ErrNoRows) {
			return 0, fmt.Errorf("store: Tag: checking duplicate: %w", checkErr)
		}
	}

	res, err := tx.Exec(`INSERT INTO tag_mappings (path, tag_id, value, auto) VALUES (?, ?, ?, ?)`,
		path, tagID, value, boolToInt(auto))
	if err != nil && auto && isUniqueConstraintErr(err) {
		// Autotag re-applying an existing mapping is a no-op: report the
		// existing mapping's id instead of an error.
		var existingID int64
		if qErr := tx.QueryRow(`
			SELECT id FROM tag_mappings
			WHERE tag_id = ? AND path = ? AND value_uniq = ?`,
			tagID, path, normalizeValue(value)).Scan(&existingID); qErr != nil {
			return 0, fmt.Errorf("store: Tag: looking up existing mapping: %w", qErr)
		}
		return existingID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("store: Tag: inserting mapping: %w", err)
	}
	mappingID, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: Tag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: Tag: commit: %w", err)
	}
	return mappingID, nil
}

// Untag removes a single (path, tagName, value) mapping. Returns
// ErrNotTagged if no such mapping exists. The orphan-elimination trigger
// removes the owning Tag if this was its last mapping.
func (s *Store) Untag(path, tagName string, value *string) error {
	res, err := s.db.Exec(`
		DELETE FROM tag_mappings
		WHERE path = ? AND value_uniq = ? AND tag_id = (SELECT id FROM tags WHERE name = ?)`,
		path, normalizeValue(value), tagName)
	if err != nil {
		return fmt.Errorf("store: Untag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: Untag: %w", err)
	}
	if n == 0 {
		return ErrNotTagged
	}
	return nil
}

// UntagAll removes every mapping of tagName regardless of value from path.
func (s *Store) UntagAll(path, tagName string) error {
	res, err := s.db.Exec(`
		DELETE FROM tag_mappings
		WHERE path = ? AND tag_id = (SELECT id FROM tags WHERE name = ?)`,
		path, tagName)
	if err != nil {
		return fmt.Errorf("store: UntagAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: UntagAll: %w", err)
	}
	if n == 0 {
		return ErrNotTagged
	}
	return nil
}

// PrefixChange rewrites every mapping whose path begins with oldPrefix to
// begin with newPrefix instead, for a moved or renamed real directory.
func (s *Store) PrefixChange(oldPrefix, newPrefix string) (changed int64, err error) {
	// sqlite's substr counts characters, not bytes; LIKE is ASCII
	// case-insensitive, so the substr comparison makes the match exact.
	n := utf8.RuneCountInString(oldPrefix)
	res, err := s.db.Exec(`
		UPDATE tag_mappings
		SET path = ? || substr(path, ? + 1)
		WHERE path LIKE ? ESCAPE '\' AND substr(path, 1, ?) = ?`,
		newPrefix, n, likePrefix(oldPrefix), n, oldPrefix)
	if err != nil {
		return 0, fmt.Errorf("store: PrefixChange: %w", err)
	}
	return res.RowsAffected()
}

func scanPathMappings(rows *sql.Rows) ([]PathMapping, error) {
	var out []PathMapping
	for rows.Next() {
		var pm PathMapping
		if err := rows.Scan(&pm.Path, &pm.MappingID); err != nil {
			return nil, fmt.Errorf("store: scanning path mapping: %w", err)
		}
		out = append(out, pm)
	}
	return out, rows.Err()
}

func normalizeValue(value *string) string {
	if value == nil {
		return nullSentinel
	}
	return *value
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// likePrefix escapes LIKE metacharacters in prefix and appends a wildcard,
// so an arbitrary path can be used as a LIKE prefix match safely.
func likePrefix(prefix string) string {
	escaped := make([]byte, 0, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if c == '%' || c == '_' || c == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	escaped = append(escaped, '%')
	return string(escaped)
}
