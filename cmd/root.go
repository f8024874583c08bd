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
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesblissett/tagfs/internal/cfg"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tagfs",
	Short: "A tag-based, read-only view over an existing file hierarchy",
	Long: `tagfs exposes a FUSE mount in which files are organized by the tags
applied to them instead of by directory, backed by a sqlite tag store.`,
	SilenceUsage: true,
}

// Execute runs the root command, printing any error to stderr and exiting
// non-zero. It is the sole entry point main.go calls.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "path to a YAML config file; flags given on the command line override its values")
	if err := cfg.BindFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves cfg.Config from flags plus the optional config file,
// the one entry point every subcommand's RunE calls first.
func loadConfig() (cfg.Config, error) {
	return cfg.Load(cfgFile)
}

// resolveDBPath prefers an explicit positional argument (every subcommand's
// first argument, mirroring the teacher's positional bucket name) and falls
// back to the --db flag when it is empty. Every subcommand's argument check
// requires that positional argument, so the fallback applies only when it
// is passed as an empty string.
func resolveDBPath(positional string, c cfg.Config) (string, error) {
	if positional != "" {
		return positional, nil
	}
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	return "", fmt.Errorf("a database path is required, either as an argument or via --db")
}
