package common

import (
	"fmt"
	"runtime"
)

const (
	// Application information
	ProjectName    = "Glidepath"
	ProjectVersion = "1.2.0"
	ProjectRepo    = "github.com/hoangnd25/glidepath"

	// Build information - normally set during build via -ldflags
	BuildDate   = "dev"
	BuildCommit = "dev"
)

// VersionInfo contains version and build information.
type VersionInfo struct {
	ProjectName  string `json:"project_name"`
	Version      string `json:"version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
	GoVersion    string `json:"go_version"`
	Architecture string `json:"architecture"`
	Repository   string `json:"repository"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		ProjectName:  ProjectName,
		Version:      ProjectVersion,
		BuildDate:    BuildDate,
		BuildCommit:  BuildCommit,
		GoVersion:    runtime.Version(),
		Architecture: runtime.GOARCH,
		Repository:   ProjectRepo,
	}
}

// PrintVersion prints the version banner.
func PrintVersion() {
	info := GetVersionInfo()
	fmt.Printf("%s v%s (%s, %s)\n", info.ProjectName, info.Version, info.GoVersion, info.Architecture)
}
