package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/achview/internal/commands"
	"github.com/cleared-dev/achview/internal/config"
	"github.com/cleared-dev/achview/internal/runlog"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

// runAchview executes the CLI in-process and returns stdout and stderr.
func runAchview(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runAchview(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized achview config")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	info, err := os.Stat(filepath.Join(dir, "import"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, _, err = runAchview(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runAchview(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestInspect_Text(t *testing.T) {
	out, _, err := runAchview(t, "inspect", fixture("malformed.ach"), "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "13 records")
	assert.Contains(t, out, "9 errors found")
	assert.Contains(t, out, "line 6: starting a new batch before end of previous batch")
}

func TestInspect_JSON(t *testing.T) {
	out, _, err := runAchview(t, "inspect", fixture("valid.ach"), "--format", "json", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, `"error_count": 0`)
	assert.Contains(t, out, `"kind": "entry detail"`)
}

func TestInspect_ConfigFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Format = "json"
	out, _, err := runAchview(t, "inspect", fixture("valid.ach"), "--config", writeConfig(t, cfg))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
}

func TestInspect_MissingFile(t *testing.T) {
	_, _, err := runAchview(t, "inspect", fixture("nope.ach"), "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_Valid(t *testing.T) {
	out, _, err := runAchview(t, "validate", fixture("valid.ach"), fixture("valid_crlf.ach"), "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "valid.ach: ok (1 batches, 2 entries)")
	assert.Contains(t, out, "valid_crlf.ach: ok")
}

func TestValidate_InvalidWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.RunLog.Enabled = true
	cfg.RunLog.Path = filepath.Join(t.TempDir(), "logs", "validate-log.csv")

	out, stderr, err := runAchview(t, "validate", fixture("valid.ach"), fixture("malformed.ach"),
		"--config", writeConfig(t, cfg), "--log-level", "info")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrInvalidFile)
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, out, "malformed.ach: 9 errors found")
	assert.Contains(t, stderr, "structural errors")

	entries, err := runlog.Read(cfg.RunLog.Path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Zero(t, entries[0].Errors)
	assert.Equal(t, 9, entries[1].Errors)
	assert.Equal(t, "line 1: batch header not preceeded by file header", entries[1].FirstError)
}

func TestEntries_CSV(t *testing.T) {
	out, _, err := runAchview(t, "entries", fixture("valid.ach"), "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "JANE DOE")
	assert.Contains(t, lines[2], "-25.00")
}

func TestEntries_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.xlsx")
	_, _, err := runAchview(t, "entries", fixture("valid.ach"), "--format", "xlsx", "--out", path, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Entries")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestEntries_BadFormat(t *testing.T) {
	_, _, err := runAchview(t, "entries", fixture("valid.ach"), "--format", "pdf", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)

	_, _, err = runAchview(t, "entries", fixture("valid.ach"), "--format", "xlsx", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"valid.ach", "malformed.ach"} {
		data, err := os.ReadFile(fixture(name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	out, _, err := runAchview(t, "scan", dir, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "FILE"))
	assert.True(t, strings.HasPrefix(lines[1], "malformed.ach"))
	assert.True(t, strings.HasSuffix(lines[1], " 9"))
	assert.True(t, strings.HasSuffix(lines[2], " 0"))
}

func TestScan_Empty(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runAchview(t, "scan", dir, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "no ACH files")
}
