package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"analyze", "detect", "industries"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	for _, name := range []string{"industry", "pretty"} {
		assert.NotNil(t, analyzeCmd.Flags().Lookup(name), "analyze should have --%s flag", name)
	}
}

func TestDetectFromStdin(t *testing.T) {
	out, err := execute(t, "Checkout flow for our online shop with Stripe payment", "detect", "-")
	require.NoError(t, err)

	var res detectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ecommerce", res.Industry)
	assert.GreaterOrEqual(t, res.Confidence, 10)
	assert.LessOrEqual(t, res.Confidence, 95)
}

func TestAnalyzeFilePinned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.md")
	require.NoError(t, os.WriteFile(path, []byte("# Brief\nHospital scheduling for patients."), 0o644))

	out, err := execute(t, "", "analyze", path, "--industry", "fintech", "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  ")

	var rep struct {
		DetectedIndustry struct {
			Industry struct {
				ID string `json:"id"`
			} `json:"industry"`
			Confidence int `json:"confidence"`
		} `json:"detectedIndustry"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "fintech", rep.DetectedIndustry.Industry.ID)
	assert.Equal(t, 95, rep.DetectedIndustry.Confidence)
}

func TestAnalyzeUnknownIndustryFails(t *testing.T) {
	_, err := execute(t, "text", "analyze", "-", "--industry", "aerospace")
	assert.Error(t, err)
	require.NoError(t, analyzeCmd.Flags().Set("industry", ""))
}

func TestIndustriesListsCatalog(t *testing.T) {
	out, err := execute(t, "", "industries")
	require.NoError(t, err)
	assert.Contains(t, out, "# catalog 2024.3")
	assert.Contains(t, out, "healthcare")
	assert.Contains(t, out, "fintech")
}
