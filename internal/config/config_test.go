package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "text", cfg.DumpFormat)
	assert.True(t, cfg.ShowSpans)
	assert.False(t, cfg.DebugTokens)
	assert.Positive(t, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "gast.yaml",
			content: `log_level: debug
dump_format: yaml
show_spans: false
workers: 3
defines:
  mode: strict
`,
		},
		{
			name: "yml",
			file: "gast.yml",
			content: `log_level: debug
dump_format: yaml
show_spans: false
workers: 3
defines:
  mode: strict
`,
		},
		{
			name: "toml",
			file: "gast.toml",
			content: `log_level = "debug"
dump_format = "yaml"
show_spans = false
workers = 3

[defines]
mode = "strict"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "console", cfg.LogFormat, "unset keys keep their defaults")
			assert.Equal(t, "yaml", cfg.DumpFormat)
			assert.False(t, cfg.ShowSpans)
			assert.Equal(t, 3, cfg.Workers)
			assert.Equal(t, map[string]string{"mode": "strict"}, cfg.Defines)
			assert.Equal(t, path, cfg.Path)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.yaml")},
		{"malformed yaml", writeFile(t, dir, "bad.yaml", "log_level: [unclosed")},
		{"malformed toml", writeFile(t, dir, "bad.toml", "log_level = ")},
		{"unknown extension", writeFile(t, dir, "gast.json", "{}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Resolve(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("environment variable", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "env.toml", `workers = 7`)
		t.Setenv("GAST_CONFIG", path)
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Workers)
	})

	t.Run("home directory", func(t *testing.T) {
		home := t.TempDir()
		writeFile(t, home, "config.yaml", "log_format: json\n")
		t.Setenv("GAST_CONFIG", "")
		t.Setenv("GAST_HOME", home)
		t.Chdir(t.TempDir())
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("working directory wins over home", func(t *testing.T) {
		home := t.TempDir()
		writeFile(t, home, "config.yaml", "log_format: json\n")
		work := t.TempDir()
		writeFile(t, work, ".gast.toml", `log_level = "warn"`)
		t.Setenv("GAST_CONFIG", "")
		t.Setenv("GAST_HOME", home)
		t.Chdir(work)
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "console", cfg.LogFormat)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("GAST_CONFIG", "")
		t.Setenv("GAST_HOME", t.TempDir())
		t.Chdir(t.TempDir())
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "trace" }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"dump format", func(c *Config) { c.DumpFormat = "json" }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefine(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Define("a=1"))
	require.NoError(t, cfg.Define("flag"))
	require.NoError(t, cfg.Define("expr=x=y"))
	assert.Equal(t, map[string]string{"a": "1", "flag": "true", "expr": "x=y"}, cfg.Defines)
	assert.Error(t, cfg.Define("=oops"))
}

func TestHome(t *testing.T) {
	t.Setenv("GAST_HOME", "/tmp/gast-home")
	assert.Equal(t, "/tmp/gast-home", Home())

	t.Setenv("GAST_HOME", "")
	assert.Equal(t, ".gast", filepath.Base(Home()))
}
