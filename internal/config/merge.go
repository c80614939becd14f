package config

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global Config, local *LocalConfig) Config {
	if local == nil {
		return global
	}

	merged := global
	if local.Remote.Repo != "" {
		merged.Remote.Repo = local.Remote.Repo
	}
	if local.Remote.Branch != "" {
		merged.Remote.Branch = local.Remote.Branch
	}
	if local.Remote.Host != "" {
		merged.Remote.Host = local.Remote.Host
	}
	if local.Update.Check != "" {
		merged.Update.Check = local.Update.Check
	}
	if local.Push.BaseRef != "" {
		merged.Push.BaseRef = local.Push.BaseRef
	}
	return merged
}
