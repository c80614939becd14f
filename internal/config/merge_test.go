package config

import (
	"testing"
)

func TestMergeLocal_Nil(t *testing.T) {
	t.Parallel()

	global := Default()
	if got := MergeLocal(global, nil); got != global {
		t.Errorf("MergeLocal(nil) = %+v, want global", got)
	}
}

func TestMergeLocal_NoMutation(t *testing.T) {
	t.Parallel()

	global := Default()
	MergeLocal(global, &LocalConfig{Remote: RemoteConfig{Repo: "me/fork"}})

	if global.Remote.Repo != DefaultRepo {
		t.Error("global config was mutated")
	}
}

func TestMergeLocal_SimpleFieldReplace(t *testing.T) {
	t.Parallel()

	local := &LocalConfig{
		Remote: RemoteConfig{Repo: "me/fork", Branch: "dev", Host: "ghe.example.com"},
		Update: UpdateConfig{Check: CheckOutgoing},
		Push:   PushConfig{BaseRef: "fork/main"},
	}
	got := MergeLocal(Default(), local)

	want := Default()
	want.Remote = RemoteConfig{Repo: "me/fork", Branch: "dev", Host: "ghe.example.com"}
	want.Update = UpdateConfig{Check: CheckOutgoing}
	want.Push = PushConfig{BaseRef: "fork/main"}
	if got != want {
		t.Errorf("MergeLocal() = %+v, want %+v", got, want)
	}
}

func TestMergeLocal_ZeroValuesPreserveGlobal(t *testing.T) {
	t.Parallel()

	global := Default()
	global.Push.BaseRef = "upstream/main"
	got := MergeLocal(global, &LocalConfig{Remote: RemoteConfig{Branch: "next"}})

	if got.Remote.Repo != DefaultRepo {
		t.Errorf("Remote.Repo = %q, want global value", got.Remote.Repo)
	}
	if got.Remote.Branch != "next" {
		t.Errorf("Remote.Branch = %q, want next", got.Remote.Branch)
	}
	if got.Push.BaseRef != "upstream/main" {
		t.Errorf("Push.BaseRef = %q, want global value", got.Push.BaseRef)
	}
}
