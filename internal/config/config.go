package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/raphi011/fw/internal/remote"
)

// DefaultRepo is the upstream framework repository.
const DefaultRepo = "antbald/BALDART"

// Environment variables that override file settings.
const (
	EnvRepo   = "FW_REPO"
	EnvBranch = "FW_BRANCH"
)

// Update check strategies.
const (
	CheckUpstream = "upstream"
	CheckOutgoing = "outgoing"
)

// DefaultBaseRef is the default push.base_ref.
const DefaultBaseRef = "origin/main"

// RemoteConfig identifies the upstream framework.
type RemoteConfig struct {
	Repo   string `toml:"repo"`
	Branch string `toml:"branch"`
	Host   string `toml:"host"`
}

// UpdateConfig holds update-related configuration
type UpdateConfig struct {
	Check string `toml:"check"`
}

// PushConfig holds push-related configuration
type PushConfig struct {
	BaseRef string `toml:"base_ref"`
}

// UIConfig selects the terminal color theme.
type UIConfig struct {
	Theme string `toml:"theme"` // preset family: see ValidThemeNames
	Mode  string `toml:"mode"`  // "auto", "light" or "dark"
}

// Config holds the fw configuration
type Config struct {
	Remote RemoteConfig `toml:"remote"`
	Update UpdateConfig `toml:"update"`
	Push   PushConfig   `toml:"push"`
	UI     UIConfig     `toml:"ui"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Remote: RemoteConfig{
			Repo:   DefaultRepo,
			Branch: remote.DefaultBranch,
			Host:   remote.DefaultHost,
		},
		Update: UpdateConfig{Check: CheckUpstream},
		Push:   PushConfig{BaseRef: DefaultBaseRef},
		UI:     UIConfig{Theme: "default", Mode: "auto"},
	}
}

// Ref returns the configured upstream as a validated reference.
func (c *Config) Ref() (remote.Ref, error) {
	return remote.Parse(c.Remote.Repo, c.Remote.Branch, c.Remote.Host)
}

// Path returns the global config file path.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "fw", "config.toml")
}

// Load reads the global config file.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads config from path. Unset values keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults restores defaults for keys present but set to "".
func (c *Config) fillDefaults() {
	def := Default()
	if c.Remote.Repo == "" {
		c.Remote.Repo = def.Remote.Repo
	}
	if c.Remote.Branch == "" {
		c.Remote.Branch = def.Remote.Branch
	}
	if c.Remote.Host == "" {
		c.Remote.Host = def.Remote.Host
	}
	if c.Update.Check == "" {
		c.Update.Check = def.Update.Check
	}
	if c.Push.BaseRef == "" {
		c.Push.BaseRef = def.Push.BaseRef
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.Mode == "" {
		c.UI.Mode = def.UI.Mode
	}
}

// ApplyEnv overrides settings from environment variables.
// getenv is os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvRepo); v != "" {
		c.Remote.Repo = v
	}
	if v := getenv(EnvBranch); v != "" {
		c.Remote.Branch = v
	}
}

// Resolve loads the global config, merges the repo's .fw.toml and applies
// environment overrides.
func Resolve(repoRoot string, getenv func(string) string) (Config, error) {
	global, err := Load()
	if err != nil {
		return global, err
	}
	local, err := LoadLocal(repoRoot)
	if err != nil {
		return global, err
	}
	cfg := MergeLocal(global, local)
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return global, err
	}
	return cfg, nil
}

const defaultConfig = `# fw configuration

# Upstream framework repository
# repo accepts "owner/name" (expanded on host) or a full clone URL.
[remote]
repo = "antbald/BALDART"
branch = "main"
# host = "github.com"

# How "fw update" decides whether there is anything to pull:
#   "upstream" - compare the fetched upstream tree with .framework (default)
#   "outgoing" - look for local commits under .framework since push.base_ref
[update]
check = "upstream"

# Ref that local framework changes are measured against for "fw push"
[push]
base_ref = "origin/main"

# Terminal colors. theme: default, none, nord, gruvbox, catppuccin
# mode: auto (detect background), light, dark
[ui]
theme = "default"
mode = "auto"
`

// ErrExists is returned by Init and InitLocal when the file exists and
// force is not set.
var ErrExists = errors.New("config file already exists")

// DefaultConfig returns the global configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	return initFile(Path(), defaultConfig, force)
}

func initFile(path, content string, force bool) (string, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
