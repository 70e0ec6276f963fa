package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arbor/internal/config"
	"arbor/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [path ...]",
	Short: "Format source files in place",
	Long: `Format the given files and directories in place. Directories are
walked recursively; files with unrecognized extensions are skipped.
Pass "-" to format standard input onto standard output.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runFmt,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change without rewriting them")
	fmtCmd.Flags().Bool("stdout", false, "print formatted content instead of rewriting files")
	fmtCmd.Flags().StringP("language", "l", "", "force a language instead of detecting by extension")
	fmtCmd.Flags().Bool("fetch-grammars", false, "fetch and build configured grammars instead of the generic parser")
	fmtCmd.Flags().Bool("skip-idempotence", false, "disable the idempotence verification pass")
	fmtCmd.Flags().IntP("jobs", "j", 0, "number of files to format concurrently (0 = number of CPUs)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		reportError(cmd, "", err)
		return err
	}

	opts := driver.Options{}
	opts.Check, _ = cmd.Flags().GetBool("check")
	opts.Stdout, _ = cmd.Flags().GetBool("stdout")
	opts.Language, _ = cmd.Flags().GetString("language")
	opts.FetchGrammars, _ = cmd.Flags().GetBool("fetch-grammars")
	opts.SkipVerification, _ = cmd.Flags().GetBool("skip-idempotence")
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")

	if len(args) == 1 && args[0] == "-" {
		if err := driver.FormatStdin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, opts); err != nil {
			reportError(cmd, "", err)
			return err
		}
		return nil
	}

	results, err := driver.FormatPaths(cmd.Context(), args, cfg, opts)
	if err != nil {
		reportError(cmd, "", err)
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	failed := 0
	changed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			reportError(cmd, res.Path, res.Err)
			continue
		}
		if opts.Stdout {
			fmt.Fprintf(cmd.OutOrStdout(), "%s", res.Formatted)
			continue
		}
		if res.Changed {
			changed++
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	if opts.Check && changed > 0 {
		return fmt.Errorf("%d files would be reformatted", changed)
	}
	return nil
}

// loadConfig honors --config when set and otherwise searches upward from
// the working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(wd)
}
