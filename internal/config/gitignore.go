package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitignoreContent keeps per-user files in a project .medibook/ directory out of version control.
const gitignoreContent = `# medibook project-local data (auto-generated)
# config.yaml is shared with the project; logs are not.
*.log
`

// EnsureGitignore creates dir/.gitignore unless one exists. It reports whether a file was
// created and never overwrites an existing .gitignore.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking .gitignore at %s: %w", path, err)
	}

	if err = os.MkdirAll(dir, configDirPermission); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	//nolint:gosec // .gitignore is meant to be world-readable.
	if err = os.WriteFile(path, []byte(gitignoreContent), 0o644); err != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", path, err)
	}
	return true, nil
}
