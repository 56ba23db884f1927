// Package version reports the build of the running binary. The variables
// are set with -ldflags "-X github.com/deskhub/deskhub/internal/shared/version.Version=v1.4.0".
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	Release   bool   `json:"release"`
}

func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		Release:   IsRelease(Version),
	}
}

// Normalize ensures the "v" prefix semver expects.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// IsRelease reports whether v is a valid semver without a prerelease tag.
// "dev" builds and "1.2.0-rc.1" are not releases.
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}
