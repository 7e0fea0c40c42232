// Package config resolves process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvVar             = "APP_ENV"
	DefaultEnvironment = "dev"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveEnvironment returns APP_ENV, or DefaultEnvironment when it is unset or empty.
func ResolveEnvironment(lookup LookupFunc) string {
	return Get(lookup, EnvVar, DefaultEnvironment)
}

// Get returns the value of key, or def when it is unset or empty.
func Get(lookup LookupFunc, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

// LoadDotEnv loads variables from a dotenv file without overriding
// ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
