package config

import "github.com/joho/godotenv"

// LoadEnv loads variables from a .env file into the process environment.
// Callers may tolerate a missing file via os.IsNotExist.
func LoadEnv() error {
	return godotenv.Load()
}
