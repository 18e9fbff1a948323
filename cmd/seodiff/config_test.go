package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCLI() *CLI {
	return &CLI{
		OutputDir:    ".",
		Format:       "csv",
		Concurrency:  3,
		Timeout:      30 * time.Second,
		WaitStrategy: "network_idle",
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
output_dir: ./reports
format: json
concurrency: 5
timeout: 60s
wait_strategy: load
user_agent: custom-agent/1.0
db: history.db
`), 0644))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "./reports", cfg.OutputDir)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, 5, cfg.Concurrency)
		assert.Equal(t, 60*time.Second, cfg.Timeout)
		assert.Equal(t, "load", cfg.WaitStrategy)
		assert.Equal(t, "custom-agent/1.0", cfg.UserAgent)
		assert.Equal(t, "history.db", cfg.DB)
	})

	t.Run("errors on missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("errors on malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

// parseCLI runs the real kong parser so tests exercise the same set-flag
// tracking as Run.
func parseCLI(t *testing.T, args ...string) (*CLI, map[string]bool) {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("seodiff"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	return cli, setFlags(ctx)
}

func TestCLI_ApplyConfig(t *testing.T) {
	t.Parallel()

	t.Run("config fills defaults", func(t *testing.T) {
		t.Parallel()

		cli := defaultCLI()
		cli.ApplyConfig(&FileConfig{
			OutputDir:    "./reports",
			Format:       "json",
			Concurrency:  8,
			Timeout:      time.Minute,
			WaitStrategy: "load",
			UserAgent:    "custom/1.0",
			DB:           "history.db",
		}, map[string]bool{})

		assert.Equal(t, "./reports", cli.OutputDir)
		assert.Equal(t, "json", cli.Format)
		assert.Equal(t, 8, cli.Concurrency)
		assert.Equal(t, time.Minute, cli.Timeout)
		assert.Equal(t, "load", cli.WaitStrategy)
		assert.Equal(t, "custom/1.0", cli.UserAgent)
		assert.Equal(t, "history.db", cli.DB)
	})

	t.Run("explicit flags win over config", func(t *testing.T) {
		t.Parallel()

		cli, set := parseCLI(t, "urls.txt", "-f", "json", "-c", "10")

		cli.ApplyConfig(&FileConfig{Format: "csv", Concurrency: 2}, set)

		assert.Equal(t, "json", cli.Format)
		assert.Equal(t, 10, cli.Concurrency)
	})

	t.Run("explicit flag equal to its default wins over config", func(t *testing.T) {
		t.Parallel()

		cli, set := parseCLI(t, "urls.txt", "-f", "csv", "-c", "3")

		cli.ApplyConfig(&FileConfig{Format: "json", Concurrency: 8}, set)

		assert.Equal(t, "csv", cli.Format)
		assert.Equal(t, 3, cli.Concurrency)
	})

	t.Run("defaulted flags yield to config", func(t *testing.T) {
		t.Parallel()

		cli, set := parseCLI(t, "urls.txt")

		cli.ApplyConfig(&FileConfig{Format: "json", Timeout: time.Minute}, set)

		assert.Equal(t, "json", cli.Format)
		assert.Equal(t, time.Minute, cli.Timeout)
	})

	t.Run("empty config changes nothing", func(t *testing.T) {
		t.Parallel()

		cli := defaultCLI()
		cli.ApplyConfig(&FileConfig{}, map[string]bool{})

		assert.Equal(t, *defaultCLI(), *cli)
	})
}
