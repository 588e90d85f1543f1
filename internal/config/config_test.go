package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/vecfmt/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "all_test_vectors.txt", cfg.Paths.Input)
	assert.Equal(t, "formatted_text_vectors.txt", cfg.Paths.Output)
	assert.Equal(t, "similarity_check.txt", cfg.Paths.Reference)
	assert.Equal(t, 4, cfg.Format.EntriesPerRecord)
	assert.True(t, cfg.Format.SelfCheck)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{
			name:    "valid config",
			modify:  func(c *config.Config) {},
			wantErr: "",
		},
		{
			name: "missing input",
			modify: func(c *config.Config) {
				c.Paths.Input = ""
			},
			wantErr: "paths.input is required",
		},
		{
			name: "missing reference with self check",
			modify: func(c *config.Config) {
				c.Paths.Reference = ""
			},
			wantErr: "paths.reference is required",
		},
		{
			name: "missing reference without self check",
			modify: func(c *config.Config) {
				c.Paths.Reference = ""
				c.Format.SelfCheck = false
			},
			wantErr: "",
		},
		{
			name: "zero entries",
			modify: func(c *config.Config) {
				c.Format.EntriesPerRecord = 0
			},
			wantErr: "format.entries_per_record must be positive",
		},
		{
			name: "invalid log level",
			modify: func(c *config.Config) {
				c.Log.Level = "invalid"
			},
			wantErr: "invalid log level",
		},
		{
			name: "invalid log format",
			modify: func(c *config.Config) {
				c.Log.Format = "xml"
			},
			wantErr: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoaderEnv(t *testing.T) {
	t.Setenv("VECFMT_PATHS_INPUT", "raw.txt")
	t.Setenv("VECFMT_FORMAT_ENTRIES_PER_RECORD", "6")
	t.Setenv("VECFMT_FORMAT_SELF_CHECK", "false")
	t.Setenv("VECFMT_LOG_LEVEL", "DEBUG")

	loader := config.NewLoader(filepath.Join(t.TempDir(), "missing-ok.yaml"))
	_, err := loader.Load()
	require.Error(t, err, "an explicit config path must exist")

	loader = config.NewLoader("")
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "raw.txt", cfg.Paths.Input)
	assert.Equal(t, 6, cfg.Format.EntriesPerRecord)
	assert.False(t, cfg.Format.SelfCheck)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "formatted_text_vectors.txt", cfg.Paths.Output)
}

func TestLoaderFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vecfmt.yaml")

	configYAML := `paths:
  input: vectors/raw.txt
  reference: vectors/test_vectors.txt
format:
  entries_per_record: 2
log:
  level: info
  format: json
`

	err := os.WriteFile(configPath, []byte(configYAML), 0644)
	require.NoError(t, err)

	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, configPath, loader.ConfigFile())
	assert.Equal(t, "vectors/raw.txt", cfg.Paths.Input)
	assert.Equal(t, "vectors/test_vectors.txt", cfg.Paths.Reference)
	assert.Equal(t, "formatted_text_vectors.txt", cfg.Paths.Output)
	assert.Equal(t, 2, cfg.Format.EntriesPerRecord)
	assert.True(t, cfg.Format.SelfCheck)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoaderInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "vecfmt.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("format:\n  entries_per_record: 0\n"), 0644))

	_, err := config.NewLoader(configPath).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries_per_record must be positive")
}

func TestSaveExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, config.SaveExample(path))

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Paths.Output = filepath.Join(tmpDir, "out", "formatted.txt")
	cfg.Log.File = filepath.Join(tmpDir, "logs", "vecfmt.log")

	err := cfg.EnsureDirectories()
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(tmpDir, "logs"))
	assert.NoDirExists(t, filepath.Join(tmpDir, "out"))
}

func TestConfigEnsureDirectoriesWithoutLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Paths.Output = filepath.Join(tmpDir, "out", "formatted.txt")

	require.NoError(t, cfg.EnsureDirectories())
	assert.NoDirExists(t, filepath.Join(tmpDir, "out"))
}
