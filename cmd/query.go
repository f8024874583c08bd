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

var queryCaseSensitive bool

var queryCmd = &cobra.Command{
	Use:   "query <db-path> <query-text>",
	Short: "Run an ad-hoc boolean query and print the matching paths",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryCaseSensitive, "case-sensitive", false, "make tag-name matching and == exact-value comparisons case-sensitive")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
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

	results, err := st.Query(args[1], queryCaseSensitive)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	for _, r := range results {
		fmt.Fprintln(cmd.OutOrStdout(), r.Path)
	}
	return nil
}
