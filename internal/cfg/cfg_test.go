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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadWithoutDatabasePathSucceeds(t *testing.T) {
	resetViper(t)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flags))
	require.NoError(t, flags.Parse(nil))

	c, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, c.Database.Path)
}

func TestLoadFlagsOnly(t *testing.T) {
	resetViper(t)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flags))
	require.NoError(t, flags.Parse([]string{"--db", "/tmp/tags.db", "--foreground"}))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tags.db", c.Database.Path)
	assert.True(t, c.Mount.Foreground)
	assert.Equal(t, "text", c.Logging.Format)
}

func TestLoadConfigFileOverlay(t *testing.T) {
	resetViper(t)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flags))
	require.NoError(t, flags.Parse([]string{"--db", "/tmp/tags.db"}))

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tagfs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  format: json\n  severity: debug\n"), 0o644))

	c, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, "debug", c.Logging.Severity)
	assert.Equal(t, "/tmp/tags.db", c.Database.Path)
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	resetViper(t)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flags))
	require.NoError(t, flags.Parse([]string{"--db", "/tmp/tags.db", "--log-format", "xml"}))

	_, err := Load("")
	assert.Error(t, err)
}

func TestResolveMountPointRejectsFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	_, err := ResolveMountPoint(f)
	assert.Error(t, err)
}

func TestResolveMountPointAcceptsDir(t *testing.T) {
	dir := t.TempDir()
	resolved, err := ResolveMountPoint(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, resolved)
}
