// repo_gitignore.go manages .llmedit/.gitignore entries.
//
// Separated from repo.go to isolate gitignore manipulation logic. The state
// database records what one user has read on one machine, so it is never
// committed, while a local config.yaml may be shared with the team.
//
// Design: We preserve existing gitignore content and formatting, only adding
// missing entries below a header comment.

package repo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const stateHeader = "# llmedit file state (per machine, not committed)"

// parseGitignore reads a gitignore file and returns its lines (trimmed).
// A missing file yields no lines.
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// Ignore adds entries to dir/.gitignore, creating it if needed. Entries
// already present are left alone.
func Ignore(dir string, entries ...string) error {
	gitignore := filepath.Join(dir, ".gitignore")

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}

	var missing []string
	for _, e := range entries {
		if !slices.Contains(lines, e) {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	s := string(content)
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if !slices.Contains(lines, stateHeader) {
		if s != "" {
			s += "\n"
		}
		s += stateHeader + "\n"
	}
	s += strings.Join(missing, "\n") + "\n"

	return os.WriteFile(gitignore, []byte(s), 0644)
}

// IsIgnored reports whether entry appears in dir/.gitignore.
func IsIgnored(dir, entry string) (bool, error) {
	lines, err := parseGitignore(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, entry), nil
}
