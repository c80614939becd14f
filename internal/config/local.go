package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file at the repository root.
const LocalConfigFileName = ".fw.toml"

// LocalConfig holds per-repo configuration overrides from .fw.toml.
// Zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	Remote RemoteConfig `toml:"remote"`
	Update UpdateConfig `toml:"update"`
	Push   PushConfig   `toml:"push"`
}

// LoadLocal reads a per-repo .fw.toml config from the given repo path.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	md, err := toml.Decode(string(data), &local)
	if err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), configFile)
	}

	if err := validateEnum(local.Update.Check, "update.check", ValidUpdateChecks); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}
	return &local, nil
}

// defaultLocalConfig is the template for fw config init --local
const defaultLocalConfig = `# fw local config (per-repo overrides)
# Place this file at the root of your repository.
# Settings here override the global config for this repo only.

# [remote]
# repo = "my-org/framework-fork"
# branch = "main"

# [update]
# check = "outgoing"

# [push]
# base_ref = "upstream/main"
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// InitLocal writes the local config template to repoPath/.fw.toml.
func InitLocal(repoPath string, force bool) (string, error) {
	return initFile(filepath.Join(repoPath, LocalConfigFileName), defaultLocalConfig, force)
}
