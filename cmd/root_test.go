package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	_, err := run(t, "init", path, "--quiet")
	require.NoError(t, err)
	return path
}

func TestInitWritesValidConfig(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, "validate", "--config", path, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration is valid")
	assert.Contains(t, out, "seed:     42")
}

func TestInitRefusesToOverwrite(t *testing.T) {
	path := writeConfig(t)
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	_, err := run(t, "init", path, "--quiet")
	assert.ErrorContains(t, err, "already exists")
	raw, _ := os.ReadFile(path)
	assert.Equal(t, "keep", string(raw))

	_, err = run(t, "init", path, "--force", "--quiet")
	assert.NoError(t, err)
}

func TestValidateReportsProblems(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, "validate", "--config", path, "--start-date", "2025-01-01", "--end-date", "2024-01-01", "--quiet")
	assert.ErrorContains(t, err, "problem(s)")
	assert.Contains(t, out, "data_generation")
}

func TestGenerateWritesSelectedFormats(t *testing.T) {
	path := writeConfig(t)
	outDir := t.TempDir()

	out, err := run(t, "--config", path,
		"--start-date", "2024-06-03", "--end-date", "2024-06-05",
		"--formats", "csv", "--output-path", outDir, "--no-noise", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "orders")

	for _, name := range []string{"orders.csv", "order_items.csv", "daily_summary.csv", "manifest.json"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "orders.json"))
}

func TestUnknownLogLevel(t *testing.T) {
	_, err := run(t, "validate", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}
