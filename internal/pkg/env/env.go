package env

import (
	"os"

	"github.com/joho/godotenv"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// First check our loaded Env map
	if val, ok := Env[key]; ok {
		return val
	}
	// Fallback to OS environment variables (for Docker/tests)
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads an optional .env file. The blog runs fine on a bare
// machine, so a missing file is not an error; lookups fall back to the
// process environment.
func SetupEnvFile() {
	envFiles := []string{
		".env",
		"../.env",
		"../../.env",
	}

	for _, envFile := range envFiles {
		if vals, err := godotenv.Read(envFile); err == nil {
			Env = vals
			return
		}
	}
}
