package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/rpg/internal/config"
	"github.com/hbjs97/rpg/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidTOML(t *testing.T) {
	content := `version = 1
shell = "zsh"
rc_path = "~/.zshrc.local"
strict = true
lock = false
create_missing = true

[extension]
name = "_grating"
sources = ["src/a.c", "src/b.c"]
compile_args = ["-O2", "-Wall"]
link_args = ["-lm"]
compiler = "gcc"
output_dir = "build"`

	path := testutil.TempConfigFile(t, content)
	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "zsh", cfg.Shell)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.IsLock())
	assert.True(t, cfg.CreateMissing)
	assert.Equal(t, "/home/u/.zshrc.local", cfg.ResolveRCPath("/home/u"))

	ext := cfg.Extension
	assert.Equal(t, "_grating", ext.Name)
	assert.Equal(t, []string{"src/a.c", "src/b.c"}, ext.Sources)
	assert.Equal(t, []string{"-O2", "-Wall"}, ext.CompileArgs)
	assert.Equal(t, []string{"-lm"}, ext.LinkArgs)
	assert.Equal(t, "gcc", ext.Compiler)
	assert.Equal(t, "build", ext.OutputDir)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	path := testutil.TempConfigFile(t, `version = 1`)
	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.False(t, cfg.Strict)
	assert.True(t, cfg.IsLock())
	assert.False(t, cfg.CreateMissing)
	assert.Empty(t, cfg.ResolveRCPath("/home/u"))
	assert.Equal(t, "_rpigratings", cfg.Extension.Name)
	assert.Equal(t, []string{"rpg/_rpigratings.c"}, cfg.Extension.Sources)
	assert.Equal(t, []string{"-O3"}, cfg.Extension.CompileArgs)
	assert.Equal(t, []string{"-lwiringPi"}, cfg.Extension.LinkArgs)
	assert.Equal(t, "cc", cfg.Extension.Compiler)
	assert.Equal(t, ".", cfg.Extension.OutputDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid toml", content: "invalid toml [[["},
		{name: "unsupported version", content: `version = 2`},
		{name: "unsupported shell", content: "version = 1\nshell = \"tcsh\""},
		{name: "blank source", content: "version = 1\n[extension]\nsources = [\" \"]"},
		{name: "name with slash", content: "version = 1\n[extension]\nname = \"a/b\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.TempConfigFile(t, tt.content)
			_, err := config.Load(path)
			assert.ErrorIs(t, err, config.ErrConfig)
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/u", config.ExpandHome("~", "/home/u"))
	assert.Equal(t, "/home/u/.bashrc", config.ExpandHome("~/.bashrc", "/home/u"))
	assert.Equal(t, "/etc/bash.bashrc", config.ExpandHome("/etc/bash.bashrc", "/home/u"))
	assert.Equal(t, "~other/.bashrc", config.ExpandHome("~other/.bashrc", "/home/u"))
}

func TestDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", ".config", "rpg"), config.Dir("/home/u"))
}

func TestValidateFilePermissions(t *testing.T) {
	path := testutil.TempConfigFile(t, `version = 1`)

	// 0600 — no error
	err := config.ValidateFilePermissions(path)
	assert.NoError(t, err)

	// 0644 — error
	os.Chmod(path, 0644)
	err = config.ValidateFilePermissions(path)
	assert.Error(t, err)
}
