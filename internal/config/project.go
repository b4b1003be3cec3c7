package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/medibook/internal/logging"
)

// envProjectDir points at a project directory explicitly, skipping the walk-up.
const envProjectDir = "MEDIBOOK_PROJECT_DIR"

// ResolveProjectConfig finds a project-local config file. It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. MEDIBOOK_PROJECT_DIR env var
//  3. a .medibook/config.yaml in startDir or any parent
//
// The global file (exclude) is never returned, so a home directory is not treated as a project.
// Returns an absolute path, or "" if no project config exists.
func ResolveProjectConfig(ctx context.Context, flagValue, startDir, exclude string) string {
	dir := flagValue
	if dir == "" {
		dir = os.Getenv(envProjectDir)
	}
	if dir != "" {
		path := projectConfigPath(ctx, dir)
		if !fileExists(path) || samePath(path, exclude) {
			return ""
		}
		return path
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("start_dir", startDir).
			Msg("failed to resolve start directory for project config discovery")
		return ""
	}

	for {
		path := filepath.Join(abs, configDirName, configFileName)
		if fileExists(path) && !samePath(path, exclude) {
			return path
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// ProjectConfigPath returns the config file a project rooted at dir uses. When dir is empty,
// MEDIBOOK_PROJECT_DIR and then the working directory are used.
func ProjectConfigPath(ctx context.Context, dir string) string {
	if dir == "" {
		dir = os.Getenv(envProjectDir)
	}
	if dir == "" {
		dir = "."
	}
	return projectConfigPath(ctx, dir)
}

// projectConfigPath converts dir to an absolute .medibook/config.yaml path.
// A dir that already ends in .medibook is not appended twice.
func projectConfigPath(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}
	if filepath.Base(abs) != configDirName {
		abs = filepath.Join(abs, configDirName)
	}
	return filepath.Join(abs, configFileName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
