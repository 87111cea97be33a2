// Package rconfig loads default CLI flag values from a .buildreport.toml
// file, the way the teacher's internal/project package loads a project
// manifest's [package] and [modules] sections with BurntSushi/toml. Flags
// explicitly set on the command line always override a loaded default.
package rconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults is the [defaults] section of a .buildreport.toml file: CLI flag
// values to use when the corresponding flag wasn't passed explicitly.
type Defaults struct {
	Format   string `toml:"format"`
	Verbose  bool   `toml:"verbose"`
	Minimal  bool   `toml:"minimal"`
	CacheDir string `toml:"cache_dir"`
	Jobs     int    `toml:"jobs"`
}

type fileConfig struct {
	Defaults Defaults `toml:"defaults"`
}

// Load parses the [defaults] section from path. A missing file is not an
// error: it yields the zero Defaults, so the CLI's own flag defaults apply.
func Load(path string) (Defaults, error) {
	if path == "" {
		return Defaults{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Defaults{}, nil
		}
		return Defaults{}, err
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Defaults{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg.Defaults, nil
}

// Discover looks for .buildreport.toml starting at dir and walking up to the
// filesystem root, mirroring the teacher's upward manifest search.
func Discover(dir string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, ".buildreport.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
