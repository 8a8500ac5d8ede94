package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"docassist/internal/shared/config"
	"docassist/internal/shared/telemetry"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "docassist",
	Short: "Classify project documents by industry and build analysis reports",
	Long: `docassist runs the rule-based industry classifier and report synthesizer
locally. Input is a file path or "-" for stdin. PDF, DOCX, Markdown and plain
text are accepted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		level, _ := cmd.Flags().GetString("log-level")
		if err := telemetry.Init(level, "json"); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "log level written to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
