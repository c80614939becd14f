// Package config handles loading and validation of fw configuration.
//
// Configuration is read from $XDG_CONFIG_HOME/fw/config.toml, then merged
// with a per-repo .fw.toml, then with environment overrides.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (applied by the caller)
//   - FW_REPO, FW_BRANCH env vars: upstream repository and branch
//   - .fw.toml at the repository root
//   - Global config file
//   - Default values
//
// # Key Settings
//
//	[remote]
//	repo = "antbald/BALDART"   # owner/name or a clone URL
//	branch = "main"
//	host = "github.com"        # host used to expand owner/name
//
//	[update]
//	check = "upstream"         # "upstream" or "outgoing"
//
//	[push]
//	base_ref = "origin/main"   # local divergence is measured against this ref
//
// # Update Check
//
// "upstream" compares the fetched upstream tree with the vendored tree.
// "outgoing" looks for local commits under .framework since push.base_ref.
package config
