// Package cli holds the pieces shared by the cookable command line tools:
// version reporting, logging, configuration and usage output.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
)

// Version information for all CLI tools
const (
	Version   = "0.3.0"
	BuildDate = "2025-09-14"
)

// CommitSHA is set at build time with -ldflags.
var CommitSHA = "unknown"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes version information as text or JSON.
func PrintVersion(w io.Writer, toolName string, jsonOutput bool) error {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}

// FlagInfo represents information about a command flag
type FlagInfo struct {
	Name    string
	Usage   string
	Default string
}

// CommandInfo describes a tool for its usage message.
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
	Examples    []string
	Flags       []FlagInfo
}

// PrintUsage writes a standardized usage message.
func PrintUsage(w io.Writer, cmd CommandInfo) {
	fmt.Fprintf(w, "%s - %s\n\n", cmd.Name, cmd.Description)
	fmt.Fprintf(w, "USAGE:\n")
	fmt.Fprintf(w, "    %s\n\n", cmd.Usage)

	if len(cmd.Flags) > 0 {
		fmt.Fprintf(w, "OPTIONS:\n")
		for _, flag := range cmd.Flags {
			fmt.Fprintf(w, "%-20s %s\n", "    --"+flag.Name, flag.Usage)
			if flag.Default != "" {
				fmt.Fprintf(w, "%-20s Default: %s\n", "", flag.Default)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	if len(cmd.Examples) > 0 {
		fmt.Fprintf(w, "EXAMPLES:\n")
		for _, example := range cmd.Examples {
			fmt.Fprintf(w, "    %s\n", example)
		}
		fmt.Fprintf(w, "\n")
	}
}
