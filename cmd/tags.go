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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesblissett/tagfs/internal/store"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <db-path> [path]",
	Short: "List every tag name, or the tags currently applied to path",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
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

	if len(args) == 2 {
		mappings, err := st.TagsForPath(args[1])
		if err != nil {
			return err
		}
		for _, m := range mappings {
			if m.Value != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", m.Tag.Name, *m.Value)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), m.Tag.Name)
			}
		}
		return nil
	}

	names, err := st.AllTagNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
