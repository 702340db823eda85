// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tubelytics build version, revision and Go version",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("json", false, "output build details as JSON")

	rootCmd.AddCommand(versionCmd)
}

type buildDetails struct {
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"goVersion"`
}

func (b buildDetails) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tubelytics %s", b.Version)
	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if b.Modified {
			rev += ", modified"
		}
		fmt.Fprintf(&sb, " (%s)", rev)
	}
	fmt.Fprintf(&sb, " %s", b.GoVersion)
	return sb.String()
}

func runVersion(cmd *cobra.Command, args []string) error {
	bi, _ := debug.ReadBuildInfo()
	details := resolveBuild(version, bi)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(details)
	}
	_, err := fmt.Fprintln(out, details)
	return err
}

// resolveBuild prefers the ldflags version and falls back to the module
// version recorded by `go install`. bi may be nil.
func resolveBuild(ldflagsVersion string, bi *debug.BuildInfo) buildDetails {
	d := buildDetails{Version: ldflagsVersion, GoVersion: runtime.Version()}
	if bi == nil {
		return d
	}
	if bi.GoVersion != "" {
		d.GoVersion = bi.GoVersion
	}
	if d.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		d.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			d.Revision = s.Value
		case "vcs.modified":
			d.Modified = s.Value == "true"
		}
	}
	return d
}
