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

// Package cfg is the flag/env/config-file surface the CLI binds into a
// single Config value, grounded on the teacher's pflag+viper cfg package
// (BindFlags registers flags and their viper keys; Load mirrors the
// teacher's initConfig: an optional YAML file is read under the flags, so a
// flag set on the command line wins over the file and the file wins over
// flag defaults, and the result is decoded via viper.Unmarshal).
package cfg

// Config is the fully resolved configuration for a tagfs invocation. Every
// field has a flag and, through viper, a matching YAML key and environment
// variable.
type Config struct {
	Mount    MountConfig    `mapstructure:"mount"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// MountConfig controls how the FUSE mount itself is presented to the
// kernel. auto-unmount, allow-other, and read-only are all required
// (spec §6.2) and so are not configurable here. Foreground is loaded from
// flags and the config file, but nothing reads it: tagfs mount always runs
// in the foreground.
type MountConfig struct {
	Foreground bool `mapstructure:"foreground"`
}

// LoggingConfig mirrors internal/logger.Config field-for-field; it is kept
// separate so internal/logger has no dependency on internal/cfg.
type LoggingConfig struct {
	Format     string `mapstructure:"format"`
	Severity   string `mapstructure:"severity"`
	FilePath   string `mapstructure:"file-path"`
	MaxSizeMB  int    `mapstructure:"max-size-mb"`
	MaxBackups int    `mapstructure:"max-backups"`
	MaxAgeDays int    `mapstructure:"max-age-days"`
}

// DatabaseConfig points at the sqlite-backed tag store. The spec's
// Non-goal of a default database location means Path has no default value.
// Load accepts an empty Path; cmd's resolveDBPath reports the error when
// neither a positional argument nor Path supplies one.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig controls the optional Prometheus endpoint internal/vfs's
// op counters are served on.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}
