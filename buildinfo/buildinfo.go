// Package buildinfo exposes the version of the running binary.
package buildinfo

import (
	"runtime/debug"
	"strconv"
	"time"
)

var (
	// GitCommit is set via, or derived from debug VCS info:
	// -X github.com/authenticvision/filetools/buildinfo.GitCommit=${GIT_COMMIT}
	GitCommit string

	// gitCommitUnixTS is set via:
	// -X github.com/authenticvision/filetools/buildinfo.gitCommitUnixTS=${GIT_COMMIT_UNIXTIME}
	gitCommitUnixTS string

	// GitCommitDate is derived from buildinfo.gitCommitUnixTS or debug VCS info
	GitCommitDate time.Time

	// Version is set via:
	// -X github.com/authenticvision/filetools/buildinfo.Version=${GIT_VERSION}
	Version string
)

func init() {
	if gitCommitUnixTS != "" {
		i, err := strconv.ParseInt(gitCommitUnixTS, 10, 64)
		if err != nil {
			panic("error parsing git commit unix timestamp: " + err.Error())
		}
		GitCommitDate = time.Unix(i, 0)
	}

	if GitCommit == "" || GitCommitDate.IsZero() {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					GitCommit = setting.Value
				case "vcs.time":
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						GitCommitDate = t
					}
				}
			}
		}
	}
}

// String is the version if set, else the commit, else "dev".
func String() string {
	switch {
	case Version != "":
		return Version
	case GitCommit != "":
		return GitCommit
	default:
		return "dev"
	}
}
