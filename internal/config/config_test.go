package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Remote.Repo != DefaultRepo {
		t.Errorf("Remote.Repo = %q, want %q", cfg.Remote.Repo, DefaultRepo)
	}
	if cfg.Update.Check != CheckUpstream {
		t.Errorf("Update.Check = %q, want %q", cfg.Update.Check, CheckUpstream)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFile_Nonexistent(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFile(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFile_Partial(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[remote]
repo = "https://git.example.com/team/framework.git"

[update]
check = "outgoing"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Remote.Repo != "https://git.example.com/team/framework.git" {
		t.Errorf("Remote.Repo = %q", cfg.Remote.Repo)
	}
	if cfg.Remote.Branch != "main" {
		t.Errorf("Remote.Branch = %q, want default main", cfg.Remote.Branch)
	}
	if cfg.Update.Check != CheckOutgoing {
		t.Errorf("Update.Check = %q", cfg.Update.Check)
	}
	if cfg.Push.BaseRef != DefaultBaseRef {
		t.Errorf("Push.BaseRef = %q", cfg.Push.BaseRef)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "[remote\nrepo = 1", "failed to parse"},
		{"bad check", "[update]\ncheck = \"sometimes\"", `invalid update.check "sometimes"`},
		{"bad repo", "[remote]\nrepo = \"not a repo\"", "invalid remote.repo"},
		{"bad base ref", "[push]\nbase_ref = \"origin main\"", "invalid push.base_ref"},
		{"bad theme", "[ui]\ntheme = \"solarized\"", `invalid ui.theme "solarized"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.toml")
			writeFile(t, path, tt.content)

			cfg, err := LoadFile(path)
			if err == nil {
				t.Fatal("LoadFile() = nil error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
			if cfg != Default() {
				t.Errorf("config on error = %+v, want defaults", cfg)
			}
		})
	}
}

func TestRef(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Remote.Host = "github.example.com"
	ref, err := cfg.Ref()
	if err != nil {
		t.Fatalf("Ref() error = %v", err)
	}
	if got := ref.URL(); got != "https://github.example.com/antbald/BALDART.git" {
		t.Errorf("URL() = %q", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{EnvRepo: "me/fork", EnvBranch: "next"}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Remote.Repo != "me/fork" || cfg.Remote.Branch != "next" {
		t.Errorf("ApplyEnv() = %+v", cfg.Remote)
	}

	cfg = Default()
	cfg.ApplyEnv(func(string) string { return "" })
	if cfg != Default() {
		t.Errorf("empty env changed config: %+v", cfg)
	}
}

func TestInitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fw", "config.toml")
	got, err := initFile(path, defaultConfig, false)
	if err != nil {
		t.Fatalf("initFile() error = %v", err)
	}
	if got != path {
		t.Errorf("initFile() = %q, want %q", got, path)
	}

	if _, err := initFile(path, defaultConfig, false); !errors.Is(err, ErrExists) {
		t.Errorf("second initFile() without force error = %v, want ErrExists", err)
	}
	if _, err := initFile(path, defaultConfig, true); err != nil {
		t.Errorf("initFile(force) error = %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(template) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("template config = %+v, want defaults", cfg)
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var cfg Config
	if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
		t.Errorf("defaultConfig is invalid TOML: %v\nContent:\n%s", err, defaultConfig)
	}
}

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		field   string
		allowed []string
		wantErr bool
	}{
		{"empty value is ok", "", "test", []string{"a", "b"}, false},
		{"valid value", "a", "test", []string{"a", "b"}, false},
		{"invalid value", "c", "test", []string{"a", "b"}, true},
		{"case sensitive", "A", "test", []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEnum(tt.value, tt.field, tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q, %q, %v) error = %v, wantErr %v", tt.value, tt.field, tt.allowed, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []string
		want string
	}{
		{"single option", []string{"a"}, `"a"`},
		{"two options", []string{"a", "b"}, `"a" or "b"`},
		{"three options", []string{"a", "b", "c"}, `"a", "b", or "c"`},
		{"four options", []string{"a", "b", "c", "d"}, `"a", "b", "c", or "d"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := formatOptions(tt.opts)
			if got != tt.want {
				t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
			}
		})
	}
}
