package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterop/winrtgen/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "nuget", s.PackageRoot)
	assert.Equal(t, "winrt.rs", s.OutputFile)
	assert.Equal(t, "rustfmt", s.Formatter)
	assert.Equal(t, "pipe", s.FormatterMode)
	assert.False(t, s.IncludeFoundation)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "winrtgen.toml")
	content := `
package_root = "/opt/packages"
output_dir = "/tmp/out"
formatter = "rustfmt --edition 2021"
formatter_mode = "in-place"
include_foundation = true
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	s, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/opt/packages", s.PackageRoot)
	assert.Equal(t, "/tmp/out", s.OutputDir)
	assert.Equal(t, "rustfmt --edition 2021", s.Formatter)
	assert.Equal(t, "in-place", s.FormatterMode)
	assert.True(t, s.IncludeFoundation)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WINRTGEN_OUTPUT_DIR", "/env/out")
	t.Setenv("WINRTGEN_PACKAGE_ROOT", "/env/packages")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/out", s.OutputDir)
	assert.Equal(t, "/env/packages", s.PackageRoot)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidateRequiresOutputDir(t *testing.T) {
	s := &Settings{}
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutputDirUnset))

	s.OutputDir = "/tmp/out"
	assert.NoError(t, s.Validate())
}
