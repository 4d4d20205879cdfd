package configuration

import (
	"fmt"
	"log/slog"
	"os"

	"saloon/internal/configuration/properties"
	"saloon/internal/configuration/util"

	"gopkg.in/yaml.v3"
)

// OverridePrefix marks environment variables that override single configuration keys,
// e.g. SALOON_RAFT__NODE_ID.
const OverridePrefix = "SALOON"

// Load reads <dir>/application.yml, layers <dir>/application-<environment>.yml on top
// and finally applies SALOON_ overrides from the process environment.
func Load(dir string) (*properties.Config, error) {
	env, err := CurrentEnvironment()
	if err != nil {
		return nil, err
	}
	return LoadEnvironment(dir, env, os.Environ())
}

func LoadEnvironment(dir string, env Environment, environ []string) (*properties.Config, error) {
	cfg, err := loadBaseConfig(dir)
	if err != nil {
		return nil, err
	}

	if err := loadProfileConfig(dir, env, cfg); err != nil {
		return nil, err
	}
	cfg.Application.Profile = env.String()

	if err := applyOverrides(cfg, environ); err != nil {
		return nil, err
	}

	slog.Debug("configuration loaded", "dir", dir, "environment", env)
	return cfg, nil
}

func loadBaseConfig(dir string) (*properties.Config, error) {
	baseConfig, err := util.LoadAndExpandYaml(dir, "application")
	if err != nil {
		slog.Error("Error loading base config", "error", err)
		return nil, err
	}

	cfg := properties.Config{}
	if err := yaml.Unmarshal([]byte(baseConfig), &cfg); err != nil {
		slog.Error("Error parsing base config", "error", err)
		return nil, fmt.Errorf("parse application.yml: %w", err)
	}

	return &cfg, nil
}

func loadProfileConfig(dir string, env Environment, cfg *properties.Config) error {
	name := fmt.Sprintf("application-%s", env)
	profileConfig, err := util.LoadAndExpandYaml(dir, name)
	if err != nil {
		slog.Error("Error loading profile config", "error", err)
		return err
	}

	if err := yaml.Unmarshal([]byte(profileConfig), cfg); err != nil {
		slog.Error("Error parsing profile config", "error", err)
		return fmt.Errorf("parse %s.yml: %w", name, err)
	}

	return nil
}

func applyOverrides(cfg *properties.Config, environ []string) error {
	node := util.OverridesNode(OverridePrefix, environ)
	if node == nil {
		return nil
	}
	if err := node.Decode(cfg); err != nil {
		return fmt.Errorf("apply %s_ overrides: %w", OverridePrefix, err)
	}
	return nil
}
