package cli

import (
	"fmt"
	"runtime"
)

// Set at build time using -ldflags "-X github.com/lyraproj/configbyenv/cli.BuildTag=..."
var (
	// BuildTag is empty if not a tagged version
	BuildTag string
	// BuildTime is the time of the build
	BuildTime string
	// BuildSHA is the Git SHA of the build
	BuildSHA string
)

// Version returns a version string consisting of <Git SHA>-<Git Tag> followed by the Go version.
// The tag "dirty" is used for untagged builds.
func Version() string {
	tag := BuildTag
	if tag == `` {
		tag = `dirty`
	}
	v := fmt.Sprintf(`%s-%s (%s)`, BuildSHA, tag, runtime.Version())
	if BuildTime != `` {
		v += ` built ` + BuildTime
	}
	return v
}
