package configutil

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads a T using cleanenv. Fields start from their `env-default` tag, are then read from
// the YAML, JSON or TOML file at path if path is not empty, and are finally overridden by the
// environment variables named in their `env` tags.
func Load[T any](path string) (*T, error) {
	var cfg T
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read configuration file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read configuration from environment: %w", err)
	}
	return &cfg, nil
}

// Describe lists the environment variables read into a T, for command help texts.
func Describe[T any]() string {
	var cfg T
	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		panic(fmt.Sprintf("invalid config struct %T: %v", cfg, err))
	}
	return desc
}
