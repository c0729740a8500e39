package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"# stadium\n"+
			"STADIUM_CONFIG=\"config/night.yaml\"\n"+
			"STADIUM_LOG=logs/from-file.txt\n"+
			"STADIUM_TEXTURE_DIR=cache\n"), 0o644))

	t.Setenv(LogVar, "logs/from-shell.txt")
	// t.Setenv restores the previous value; clear the others the same way.
	t.Setenv(ConfigVar, "")
	os.Unsetenv(ConfigVar)
	t.Setenv(TextureDirVar, "")
	os.Unsetenv(TextureDirVar)

	require.NoError(t, Load(path))
	o := Read()
	assert.Equal(t, "config/night.yaml", o.Config)
	assert.Equal(t, "logs/from-shell.txt", o.Log)
	assert.Equal(t, "cache", o.TextureDir)
}

func TestReadTrims(t *testing.T) {
	t.Setenv(TextureDirVar, "  textures  ")
	t.Setenv(ConfigVar, "")
	assert.Equal(t, "textures", Read().TextureDir)
	assert.Empty(t, Read().Config)
}
