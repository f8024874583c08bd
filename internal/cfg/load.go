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

package cfg

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load resolves the final Config from the flags already bound by BindFlags
// and, if configFile is non-empty, a YAML file read through viper. A flag
// set on the command line takes precedence over the file; the file takes
// precedence over flag defaults. This mirrors the teacher's initConfig flow,
// down to resolving the config file's own path before reading it.
func Load(configFile string) (Config, error) {
	if configFile != "" {
		resolved, err := ResolveExisting(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("cfg: resolving config file: %w", err)
		}
		viper.SetConfigFile(resolved)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("cfg: reading config file: %w", err)
		}
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("cfg: unmarshalling config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// validate checks the parts of Config that aren't already constrained by
// their flag type. Database.Path is deliberately not required here: the
// spec's explicit Non-goal of a default database location means every
// subcommand takes it as an explicit positional argument instead, with
// --db only a convenience override for scripting (see cmd/root.go).
func (c Config) validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("cfg: log-format must be %q or %q, got %q", "text", "json", c.Logging.Format)
	}
	return nil
}
