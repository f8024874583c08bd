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
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jacobsa/fuse"
	"github.com/jacobsa/fuse/fuseutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jamesblissett/tagfs/internal/cfg"
	"github.com/jamesblissett/tagfs/internal/clock"
	"github.com/jamesblissett/tagfs/internal/logger"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/jamesblissett/tagfs/internal/vfs"
)

var mountCmd = &cobra.Command{
	Use:   "mount <db-path> <mount-point>",
	Short: "Mount the tag store as a read-only FUSE file system",
	Args:  cobra.ExactArgs(2),
	RunE:  runMount,
}

func init() {
	rootCmd.AddCommand(mountCmd)
}

func runMount(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}

	l, closer := logger.New(logger.Config{
		Format:     c.Logging.Format,
		Severity:   logger.Severity(c.Logging.Severity),
		FilePath:   c.Logging.FilePath,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
	})
	defer closer.Close()
	logger.Init(l)

	dbPath, err := resolveDBPath(args[0], c)
	if err != nil {
		return err
	}
	mountPoint, err := cfg.ResolveMountPoint(args[1])
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening tag store: %w", err)
	}
	defer st.Close()

	if ok, missing, err := st.AllPathsValid(); err == nil && !ok {
		for _, p := range missing {
			l.Warn("tagged path does not exist on the real file system", "path", p)
		}
	}

	if c.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		for _, collector := range vfs.Collectors() {
			reg.MustRegister(collector)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(c.Metrics.Addr, mux); err != nil {
				l.Error("metrics server stopped", "error", err)
			}
		}()
		l.Info("serving metrics", "addr", c.Metrics.Addr)
	}

	frontend := vfs.New(st, clock.RealClock{})
	server := fuseutil.NewFileSystemServer(frontend)

	mountCfg := &fuse.MountConfig{
		FSName:               "tagfs",
		Subtype:              "tagfs",
		VolumeName:           "tagfs",
		ReadOnly:             true,
		EnableParallelDirOps: false,
		Options:              mountOptions(),
		ErrorLogger:          slog.NewLogLogger(l.Handler(), slog.LevelError),
	}
	if c.Logging.Severity == "trace" || c.Logging.Severity == "debug" {
		mountCfg.DebugLogger = slog.NewLogLogger(l.Handler(), slog.LevelDebug)
	}

	l.Info("mounting", "mount_point", mountPoint, "db", dbPath)
	mfs, err := fuse.Mount(mountPoint, server, mountCfg)
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	if err := mfs.Join(context.Background()); err != nil {
		return fmt.Errorf("waiting for unmount: %w", err)
	}
	return nil
}

// mountOptions is the "-o"-style option map fuse.MountConfig expects.
// auto_unmount and allow_other are both required mount options (spec
// §6.2) and are not configurable; read-only is enforced separately via
// fuse.MountConfig.ReadOnly.
func mountOptions() map[string]string {
	return map[string]string{
		"auto_unmount": "",
		"allow_other":  "",
	}
}
