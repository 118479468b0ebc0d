// Package version exposes build metadata.
package version

import "runtime/debug"

// Set via -ldflags at release time.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info holds resolved version information.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// Resolve returns the build version, falling back to module build info
// when the binary was built without ldflags.
func Resolve() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		if info.Commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					info.Commit = s.Value
					break
				}
			}
		}
	}

	return info
}
