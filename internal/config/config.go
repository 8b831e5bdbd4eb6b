// Package config resolves client configuration from the environment, with a
// .env file honored for development.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is the resolved client configuration.
type Config struct {
	// APIBaseURL is the attendance service endpoint, including the /api
	// prefix.
	APIBaseURL string

	// DataDir holds the session database and log file.
	DataDir string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() Config {
	godotenv.Load() //nolint:errcheck // optional file

	return Config{
		APIBaseURL: getEnv("PUNCHCARD_API_URL", "http://localhost:5000/api"),
		DataDir:    getEnv("PUNCHCARD_DATA_DIR", defaultDataDir()),
	}
}

// DBPath returns the session database directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "db")
}

// LogPath returns the log file path. The TUI owns the terminal, so logs go
// to a file.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "punchcard.log")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".punchcard"
	}
	return filepath.Join(home, ".punchcard")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
