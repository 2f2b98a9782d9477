// Package buildinfo carries the version stamped into window titles and status text.
package buildinfo

import "runtime/debug"

// Set at build time via -ldflags "-X wavescope/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
)

const shortCommit = 7

// Short returns a compact build identifier. It prefers an explicit version,
// then the linked commit, then the VCS revision recorded by the go tool.
func Short() string {
	return short(Version, Commit, vcsRevision)
}

func short(version, commit string, rev func() string) string {
	if version != "" && version != "dev" {
		return version
	}
	if commit != "" && commit != "unknown" {
		return trim(commit)
	}
	if r := rev(); r != "" {
		return trim(r)
	}
	return "dev"
}

func trim(c string) string {
	if len(c) > shortCommit {
		return c[:shortCommit]
	}
	return c
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
