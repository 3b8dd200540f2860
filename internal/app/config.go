package app

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"

	"github.com/maxbolgarin/critic/internal/agent"
	"github.com/maxbolgarin/critic/internal/provider"
	"github.com/maxbolgarin/critic/internal/reviewer"
	"github.com/maxbolgarin/critic/internal/server"
)

// Config represents the main application configuration
type Config struct {
	Provider provider.Config `yaml:"provider"`
	Agent    agent.Config    `yaml:"agent"`
	Review   reviewer.Config `yaml:"review"`
	Server   server.Config   `yaml:"server"`
}

// LoadConfig reads configuration from the YAML file at path with environment
// variables applied on top. Without a path the environment alone is used, the
// way a CI step configures critic.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, errm.Wrap(err, "failed to read config from environment")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, errm.Wrap(err, "failed to read config file", "path", path)
	}

	return cfg, nil
}
