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

// schema is executed once, idempotently, against every newly opened
// database. Grounded on the teacher corpus's convention of keeping raw DDL
// as a package-level string constant next to the code that executes it
// (see the beads/BeadsLog sqlite schema packages in the reference tree)
// rather than pulling in a migration framework tagfs has no need for: the
// schema never changes shape across versions.
const schema = `
CREATE TABLE IF NOT EXISTS tags (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE,
	takes_value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tag_mappings (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	path       TEXT NOT NULL,
	tag_id     INTEGER NOT NULL REFERENCES tags(id),
	value      TEXT,
	auto       INTEGER NOT NULL DEFAULT 0,
	-- SQLite treats every NULL as distinct under a UNIQUE constraint, which
	-- would let the same (tag, path) pair be tagged with an absent value
	-- more than once. The generated column collapses NULL to the sentinel
	-- so the uniqueness rule in spec §3 actually holds.
	value_uniq TEXT GENERATED ALWAYS AS (coalesce(value, 'NULL')) STORED,
	UNIQUE (tag_id, value_uniq, path)
);

CREATE INDEX IF NOT EXISTS idx_tag_mappings_path   ON tag_mappings(path);
CREATE INDEX IF NOT EXISTS idx_tag_mappings_tag_id ON tag_mappings(tag_id);

CREATE TABLE IF NOT EXISTS stored_queries (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL UNIQUE,
	query TEXT NOT NULL
);

-- Orphan elimination (spec invariant 4): once a Tag's last mapping is gone,
-- the Tag itself disappears, so a future tag of the same name starts fresh
-- with no stale takes_value decision.
CREATE TRIGGER IF NOT EXISTS trg_tag_mappings_orphan_tag
AFTER DELETE ON tag_mappings
FOR EACH ROW
BEGIN
	DELETE FROM tags
	WHERE id = OLD.tag_id
	  AND NOT EXISTS (SELECT 1 FROM tag_mappings WHERE tag_id = OLD.tag_id);
END;
`

// nullSentinel is the literal substituted for an absent value under the
// uniqueness constraint (spec §3: "normalized_value ... the sentinel
// 'NULL' when absent").
const nullSentinel = "NULL"
