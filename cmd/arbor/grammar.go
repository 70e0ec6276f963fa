package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"arbor/internal/driver"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar [language ...]",
	Short: "Fetch and build grammars ahead of time",
	Long: `Fetch, compile and cache the grammars for the named languages, or
for every configured language when none are named. Formatting with
--fetch-grammars then starts from a warm cache.`,
	RunE:          runGrammar,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runGrammar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		reportError(cmd, "", err)
		return err
	}

	results, err := driver.EnsureGrammars(cmd.Context(), cfg, args)
	if err != nil {
		reportError(cmd, "", err)
		return err
	}

	okLabel := color.New(color.FgGreen, color.Bold)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			reportError(cmd, res.Language, res.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okLabel.Sprint("ok"), res.Language)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d grammars failed", failed, len(results))
	}
	return nil
}
