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

var tagAuto bool

var tagCmd = &cobra.Command{
	Use:   "tag <db-path> <path> <tag> [value]",
	Short: "Apply a tag, optionally with a value, to a path",
	Args:  cobra.RangeArgs(3, 4),
	RunE:  runTag,
}

func init() {
	tagCmd.Flags().BoolVar(&tagAuto, "auto", false, "mark the mapping as machine-derived, suppressing the duplicate-tag error")
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
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

	path, tagName := args[1], args[2]
	var value *string
	if len(args) == 4 {
		value = &args[3]
	}

	if _, err := st.Tag(path, tagName, value, tagAuto); err != nil {
		return err
	}
	return nil
}
