// Package config holds persisted, workspace-level policy: default tab
// width, extra syntax-definition search paths, and a bounded list of
// recently-opened workspace roots.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const maxRecentRoots = 10

// Settings is the user-facing, TOML-backed configuration for a workspace.
type Settings struct {
	TabWidth    int      `toml:"tab_width"`
	SyntaxPaths []string `toml:"syntax_paths"`
	RecentRoots []string `toml:"recent_roots"`
}

// DefaultSettings returns the configuration used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		TabWidth:    4,
		SyntaxPaths: nil,
		RecentRoots: nil,
	}
}

// Load reads Settings from path, returning DefaultSettings and a nil error
// if the file does not exist.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return settings, &ConfigLoadError{Path: path, Err: err}
	}
	return settings, nil
}

// Save writes settings to path, creating its parent directory if needed.
func Save(path string, settings Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &ConfigLoadError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &ConfigLoadError{Path: path, Err: err}
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(settings); err != nil {
		return &ConfigLoadError{Path: path, Err: err}
	}
	return nil
}

// AddRecentRoot moves root to the front of RecentRoots, deduplicating and
// trimming to maxRecentRoots.
func (s *Settings) AddRecentRoot(root string) {
	filtered := make([]string, 0, len(s.RecentRoots)+1)
	filtered = append(filtered, root)
	for _, existing := range s.RecentRoots {
		if existing != root {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) > maxRecentRoots {
		filtered = filtered[:maxRecentRoots]
	}
	s.RecentRoots = filtered
}
