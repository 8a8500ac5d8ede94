package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"docassist/internal/bootstrap"
	"docassist/internal/extract"
	"docassist/internal/shared/util"
)

const maxInputBytes = 10 << 20

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Print the analysis report for a document as JSON",
	Long: `Classify a document and synthesize its report.

Examples:
  # Auto-detect the industry
  docassist analyze brief.pdf --pretty

  # Pin the industry
  cat notes.md | docassist analyze - --industry fintech`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var detectCmd = &cobra.Command{
	Use:   "detect <file|->",
	Short: "Print the detected industry and per-profile scores",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	analyzeCmd.Flags().String("industry", "", `industry id to pin ("" or "auto" detects)`)
	analyzeCmd.Flags().Bool("pretty", false, "indent JSON output")
	detectCmd.Flags().Bool("pretty", false, "indent JSON output")

	rootCmd.AddCommand(analyzeCmd, detectCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	engine, _, err := bootstrap.BuildEngine(cfg)
	if err != nil {
		return err
	}
	industry, _ := cmd.Flags().GetString("industry")
	rep, err := engine.ClassifyAndSynthesize(text, industry)
	if err != nil {
		return eris.Wrap(err, "analyze")
	}
	return writeJSON(cmd, rep)
}

type detectOutput struct {
	Industry   string `json:"industry"`
	Name       string `json:"name"`
	Confidence int    `json:"confidence"`
	Scores     any    `json:"scores"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	engine, _, err := bootstrap.BuildEngine(cfg)
	if err != nil {
		return err
	}
	res, scores, err := engine.Detect(text)
	if err != nil {
		return eris.Wrap(err, "detect")
	}
	return writeJSON(cmd, detectOutput{
		Industry:   res.Industry.ID,
		Name:       res.Industry.Name,
		Confidence: res.Confidence,
		Scores:     scores,
	})
}

// readInput loads a file or stdin and extracts its text.
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		r    io.Reader
		name string
	)
	if path == "-" {
		r = cmd.InOrStdin()
		name = "stdin.txt"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", eris.Wrapf(err, "open %s", path)
		}
		defer f.Close()
		r = f
		name = filepath.Base(path)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", eris.Wrap(err, "read input")
	}
	if len(data) > maxInputBytes {
		return "", eris.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	if len(data) == 0 {
		return "", nil
	}
	return extract.ExtractTextFromBytes(cmd.Context(), data, util.DetectContentType(data, name), name)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
