// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable read by the dialogue tools.
const EnvPrefix = "DIALOGUE_"

// ParseEnv loads configuration from environment variables. Tags on target are
// resolved relative to EnvPrefix, so `env:"DB_PATH"` reads DIALOGUE_DB_PATH.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
