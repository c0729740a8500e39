package env

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Variables the stadium reads.
const (
	ConfigVar     = "STADIUM_CONFIG"
	LogVar        = "STADIUM_LOG"
	TextureDirVar = "STADIUM_TEXTURE_DIR"
)

// Load reads the given file (e.g. ".env") into the process environment. Variables that are
// already set win over the file. The file may be missing; that is not an error.
func Load(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Overrides are the settings that can come from the environment instead of the config file.
// Empty fields are unset.
type Overrides struct {
	Config     string
	Log        string
	TextureDir string
}

// Read collects the overrides from the current environment.
func Read() Overrides {
	return Overrides{
		Config:     get(ConfigVar),
		Log:        get(LogVar),
		TextureDir: get(TextureDirVar),
	}
}

func get(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
