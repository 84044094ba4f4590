// Package version exposes the build metadata stamped into the binary.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Stamped by the release build via -ldflags "-X ...". Source builds keep
// the defaults.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// Info describes one build of the binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo combines the stamped values with the runtime details of the
// current build.
func GetInfo() Info {
	return Info{
		Version:   version,
		GitCommit: shortCommit(gitCommit),
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the info as a single line for terminal output.
func (i Info) String() string {
	return fmt.Sprintf("stripimports %s %s (commit %s, built %s, %s)",
		i.Version, i.Platform, i.GitCommit, i.BuildDate, i.GoVersion)
}

// JSON renders the info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding version info: %w", err)
	}

	return string(data), nil
}

// shortCommit trims a full SHA to the conventional 7-character form.
// Non-SHA placeholders like "none" pass through untouched.
func shortCommit(c string) string {
	const short = 7

	if len(c) <= short {
		return c
	}

	return c[:short]
}
