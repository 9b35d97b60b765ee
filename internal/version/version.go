package version

import (
	"runtime"
	"runtime/debug"
)

// Set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full returns the version, short commit, build date and Go toolchain.
func Full() string {
	return Version + " (" + Commit + ") " + Date + " " + runtime.Version()
}

func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		backfill(info)
	}
}

// backfill fills Version, Commit and Date from build info when they still
// hold their ldflags defaults, so `go install` builds report real values.
func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}

	// "(devel)" means an untagged build from a checkout; keep "dev".
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	modified := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && s.Value != "" {
				Commit = s.Value[:min(len(s.Value), 7)]
			}
		case "vcs.time":
			if Date == "unknown" && s.Value != "" {
				Date = s.Value
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if modified && Commit != "none" && Commit[len(Commit)-1] != '+' {
		Commit += "+"
	}
}
