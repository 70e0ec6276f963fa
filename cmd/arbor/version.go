package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/version"
)

const tagline = "grammars in, formatted code out"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("hash", false, "print only the git commit hash")
	versionCmd.Flags().Bool("date", false, "print only the build date")
	versionCmd.Flags().Bool("full", false, "print every known build detail")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if only, _ := cmd.Flags().GetBool("hash"); only {
		fmt.Fprintln(out, valueOrUnknown(version.GitCommit))
		return nil
	}
	if only, _ := cmd.Flags().GetBool("date"); only {
		fmt.Fprintln(out, valueOrUnknown(version.BuildDate))
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	full, _ := cmd.Flags().GetBool("full")
	switch format {
	case "pretty":
		fmt.Fprintf(out, "arbor %s — %s\n", version.Version, tagline)
		if full {
			fmt.Fprintf(out, "  commit: %s\n", valueOrUnknown(version.GitCommit))
			fmt.Fprintf(out, "  built:  %s\n", valueOrUnknown(version.BuildDate))
		}
		return nil
	case "json":
		payload := struct {
			Name    string `json:"name"`
			Version string `json:"version"`
			Commit  string `json:"commit,omitempty"`
			Date    string `json:"date,omitempty"`
		}{
			Name:    "arbor",
			Version: version.Version,
			Commit:  version.GitCommit,
			Date:    version.BuildDate,
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("invalid --format value %q (must be pretty or json)", format)
	}
}

func valueOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
