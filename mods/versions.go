package mods

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// set by the build, see magefile.go
var (
	versionString   = ""
	versionGitSHA   = ""
	buildTimestamp  = ""
	goVersionString = ""
)

type Version struct {
	Major      int    `json:"major" yaml:"major"`
	Minor      int    `json:"minor" yaml:"minor"`
	Patch      int    `json:"patch" yaml:"patch"`
	Prerelease string `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
	GitSHA     string `json:"git" yaml:"git"`
}

func (v *Version) String() string {
	ret := fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		ret += "-" + v.Prerelease
	}
	return ret
}

var (
	_version     *Version
	_versionOnce sync.Once
)

// GetVersion parses the version stamped by the build. A plain `go build`
// falls back to the module version recorded in the binary, which is
// v0.0.0 for a development build.
func GetVersion() *Version {
	_versionOnce.Do(func() {
		_version = parseVersion(rawVersion(), versionGitSHA)
	})
	return _version
}

func parseVersion(raw string, gitSHA string) *Version {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return &Version{GitSHA: gitSHA}
	}
	return &Version{
		Major:      int(v.Major()),
		Minor:      int(v.Minor()),
		Patch:      int(v.Patch()),
		Prerelease: v.Prerelease(),
		GitSHA:     gitSHA,
	}
}

func rawVersion() string {
	if versionString != "" {
		return versionString
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return ""
}

func DisplayVersion() string {
	return strings.ToUpper(GetVersion().String())
}

func VersionString() string {
	return fmt.Sprintf("%s (%v %v)", DisplayVersion(), versionGitSHA, buildTimestamp)
}

func BuildCompiler() string {
	if goVersionString == "" {
		return strings.TrimPrefix(runtime.Version(), "go")
	}
	return goVersionString
}

func BuildTimestamp() string {
	return buildTimestamp
}
