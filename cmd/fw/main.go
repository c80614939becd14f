package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at link time by release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}

// versionString describes this build of fw. Builds without linker flags
// fall back to the module version recorded by go install.
func versionString() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("fw %s (%s, %s, %s)", v, c, date, runtime.Version())
}
