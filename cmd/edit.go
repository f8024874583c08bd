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

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/jamesblissett/tagfs/internal/editrepr"
	"github.com/jamesblissett/tagfs/internal/store"
)

var editCmd = &cobra.Command{
	Use:   "edit <db-path>",
	Short: "Edit the whole tag store as text in $EDITOR and re-ingest it on save",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(args[0], c)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening tag store: %w", err)
	}
	defer st.Close()

	before, err := dumpToBuffer(st)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "tagfs-edit-*.txt")
	if err != nil {
		return fmt.Errorf("creating scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(before.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing scratch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing scratch file: %w", err)
	}

	editor := resolveEditor()
	editCmd := exec.Command(editor, tmpPath)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w (set $EDITOR or $VISUAL to a different editor)", editor, err)
	}

	after, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("reading scratch file back: %w", err)
	}
	if bytes.Equal(before.Bytes(), after) {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing changed, aborting")
		return nil
	}

	blocks, err := editrepr.Parse(bytes.NewReader(after))
	if err != nil {
		return fmt.Errorf("scratch file is malformed, store left untouched: %w", err)
	}

	mappings := flattenBlocks(blocks)
	if err := st.ReplaceAll(mappings); err != nil {
		return fmt.Errorf("re-ingesting edited tags: %w", err)
	}
	return nil
}

// dumpToBuffer serializes every mapping currently in st into the edit
// representation, one block per path in the order AllMappings returns them.
func dumpToBuffer(st *store.Store) (*bytes.Buffer, error) {
	mappings, err := st.AllMappings()
	if err != nil {
		return nil, fmt.Errorf("reading tag store: %w", err)
	}

	var blocks []editrepr.Block
	var cur *editrepr.Block
	for _, m := range mappings {
		if cur == nil || cur.Path != m.Path {
			if cur != nil {
				blocks = append(blocks, *cur)
			}
			cur = &editrepr.Block{Path: m.Path}
		}
		tag := editrepr.Tag{Name: m.Tag.Name, Value: m.Value}
		if m.Auto {
			cur.Auto = append(cur.Auto, tag)
		} else {
			cur.Manual = append(cur.Manual, tag)
		}
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}

	var buf bytes.Buffer
	if err := editrepr.Format(&buf, blocks); err != nil {
		return nil, fmt.Errorf("formatting tag store: %w", err)
	}
	return &buf, nil
}

// flattenBlocks is the inverse of dumpToBuffer's grouping, producing the
// flat mapping list ReplaceAll wants.
func flattenBlocks(blocks []editrepr.Block) []store.Mapping {
	var out []store.Mapping
	for _, b := range blocks {
		for _, t := range b.Manual {
			out = append(out, store.Mapping{Path: b.Path, Tag: t.Name, Value: t.Value, Auto: false})
		}
		for _, t := range b.Auto {
			out = append(out, store.Mapping{Path: b.Path, Tag: t.Name, Value: t.Value, Auto: true})
		}
	}
	return out
}

// resolveEditor mirrors the usual $VISUAL-before-$EDITOR convention, falling
// back to vi when neither is set.
func resolveEditor() string {
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}
