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

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers every Config flag on flags and binds each one to its
// viper key, the same two-step the teacher's cfg.BindFlags performs so that
// a flag, an environment variable, and a config-file key all resolve to one
// value with flags taking precedence.
func BindFlags(flags *pflag.FlagSet) error {
	flags.Bool("foreground", false, "run in the foreground (mount never daemonizes, so this has no effect)")

	flags.String("log-format", "text", `log output format, "text" or "json"`)
	flags.String("log-severity", "info", "log severity: trace, debug, info, warn, error, or off")
	flags.String("log-file", "", "write logs to this file instead of stderr (rotated)")
	flags.Int("log-max-size-mb", 100, "maximum size in megabytes of a log file before it is rotated")
	flags.Int("log-max-backups", 3, "maximum number of rotated log files to retain")
	flags.Int("log-max-age-days", 28, "maximum age in days of a rotated log file")

	flags.String("db", "", "path to the sqlite tag store, used when the positional db-path argument is empty")
	flags.String("metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9090 (disabled if empty)")

	binds := map[string]string{
		"mount.foreground":     "foreground",
		"logging.format":       "log-format",
		"logging.severity":     "log-severity",
		"logging.file-path":    "log-file",
		"logging.max-size-mb":  "log-max-size-mb",
		"logging.max-backups":  "log-max-backups",
		"logging.max-age-days": "log-max-age-days",
		"database.path":        "db",
		"metrics.addr":         "metrics-addr",
	}
	for viperKey, flagName := range binds {
		if err := viper.BindPFlag(viperKey, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("cfg: binding flag %q: %w", flagName, err)
		}
	}
	return nil
}
