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
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// ResolveExisting expands a leading "~" and makes path absolute, the same
// canonicalization the teacher applies to both the mount point and the
// config-file path before a daemonizing re-exec could change the working
// directory out from under a relative path.
func ResolveExisting(path string) (string, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("cfg: resolving %q: %w", path, err)
	}
	return abs, nil
}

// ResolveMountPoint canonicalizes a mount point and checks it is an
// existing, accessible directory before fuse.Mount is ever attempted, so a
// typo surfaces as a plain error instead of an opaque kernel mount failure.
func ResolveMountPoint(path string) (string, error) {
	abs, err := ResolveExisting(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cfg: mount point %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cfg: mount point %q is not a directory", abs)
	}
	if err := unix.Access(abs, unix.R_OK|unix.X_OK); err != nil {
		return "", fmt.Errorf("cfg: mount point %q is not accessible: %w", abs, err)
	}
	return abs, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cfg: expanding %q: %w", path, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
