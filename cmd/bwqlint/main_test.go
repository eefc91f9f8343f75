package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwqlint/internal/config"
	"bwqlint/internal/driver"
	"bwqlint/internal/source"
	"bwqlint/internal/validate/rules"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)
	assert.False(t, shouldUseTUI(uiModeOff, 10))
	assert.True(t, shouldUseTUI(uiModeOn, 1))
}

func TestResolveFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "short"

	got, err := resolveFormat("", cfg)
	require.NoError(t, err)
	assert.Equal(t, "short", got)

	got, err = resolveFormat("SARIF", cfg)
	require.NoError(t, err)
	assert.Equal(t, "sarif", got)

	got, err = resolveFormat("", config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "pretty", got)

	_, err = resolveFormat("xml", cfg)
	assert.Error(t, err)
}

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.PersistentFlags().Int("max-diagnostics", -1, "")
	cmd.PersistentFlags().Bool("timings", false, "")
	cmd.PersistentFlags().String("config", "", "")
	cmd.PersistentFlags().String("color", "off", "")
	addInputFlags(cmd)
	return cmd
}

func TestBuildOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rules["short-term"] = config.RuleConfig{Severity: rules.SeverityOff}

	cmd := newFlagCmd()
	opts, err := buildOptions(cmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxDiagnostics, opts.MaxDiagnostics)
	assert.Len(t, opts.Rules, len(rules.Names())-1)
	_, found := opts.Rules.Find("short-term")
	assert.False(t, found)

	require.NoError(t, cmd.PersistentFlags().Set("max-diagnostics", "0"))
	require.NoError(t, cmd.PersistentFlags().Set("timings", "true"))
	opts, err = buildOptions(cmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, opts.MaxDiagnostics)
	assert.True(t, opts.Timings)
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.TOMLName)
	cfg := config.Starter()
	cfg.Format = "json"
	require.NoError(t, config.Write(path, cfg, false))

	cmd := newFlagCmd()
	require.NoError(t, cmd.PersistentFlags().Set("config", path))
	got, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, path, got.Path)
}

func TestReadSource(t *testing.T) {
	cmd := newFlagCmd()
	cmd.SetIn(strings.NewReader("apple AND banana"))
	f, err := readSource(cmd, []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", f.Path)
	assert.Equal(t, "apple AND banana", f.Text())

	_, err = readSource(cmd, nil)
	assert.Error(t, err)

	require.NoError(t, cmd.Flags().Set("query", "x OR y"))
	f, err = readSource(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "<query>", f.Path)

	_, err = readSource(cmd, []string{"file.bwq"})
	assert.Error(t, err)
}

func TestRenderReportsShort(t *testing.T) {
	rep := driver.Lint(context.Background(), "", "a* OR a????b", driver.Options{})
	var buf bytes.Buffer
	err := renderReports(&buf, []*driver.Report{rep}, renderOpts{format: "short"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "<query>:1:1: error "))
	assert.Contains(t, lines[0], "(wildcard-performance)")
	assert.Contains(t, lines[1], " warning ")
	assert.Equal(t, "1 error, 1 warning in 1 file", lines[2])
}

func TestRenderReportsQuietDropsSummary(t *testing.T) {
	rep := driver.Lint(context.Background(), "", "apple", driver.Options{})
	var buf bytes.Buffer
	require.NoError(t, renderReports(&buf, []*driver.Report{rep}, renderOpts{format: "pretty", quiet: true}))
	assert.Empty(t, buf.String())
}

func TestRenderReportsJSON(t *testing.T) {
	reports := []*driver.Report{
		driver.Lint(context.Background(), "one", "a* OR a????b", driver.Options{}),
		driver.Lint(context.Background(), "two", "apple", driver.Options{}),
	}
	var buf bytes.Buffer
	require.NoError(t, renderReports(&buf, reports, renderOpts{format: "json"}))

	var out struct {
		Files []struct {
			Path string `json:"path"`
		} `json:"files"`
		Count  int `json:"count"`
		Errors int `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Files, 2)
	assert.Equal(t, "one", out.Files[0].Path)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 1, out.Errors)
}

func TestRenderReportsSarifRuleDescriptions(t *testing.T) {
	rep := driver.Lint(context.Background(), "q", "a*", driver.Options{})
	var buf bytes.Buffer
	ro := renderOpts{format: "sarif", rules: rules.Default()}
	require.NoError(t, renderReports(&buf, []*driver.Report{rep}, ro))
	assert.Contains(t, buf.String(), `"wildcard-performance"`)
	assert.Contains(t, buf.String(), `"bwqlint"`)
}

func TestCollectRules(t *testing.T) {
	infos := collectRules(map[string]string{"pure-negation": "off"})
	require.Len(t, infos, len(rules.Names()))
	for _, info := range infos {
		assert.NotEmpty(t, info.Description, info.Name)
		if info.Name == "pure-negation" {
			assert.Equal(t, "off", info.Severity)
		} else {
			assert.Equal(t, rules.SeverityDefault, info.Severity)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, printRules(&buf, infos))
	assert.True(t, strings.HasPrefix(buf.String(), "RULE"))
}

func TestReportFatalExitsWithFindings(t *testing.T) {
	cmd := newFlagCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	res := driver.Parse(source.NewVirtual("q", "apple AND"), driver.Options{})
	require.NotNil(t, res.Fatal)
	err := reportFatal(cmd, "q", res.File, res.Fatal)
	assert.True(t, isSilentExit(err))
	assert.Contains(t, stderr.String(), "q:1:")
}
