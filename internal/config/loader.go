package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCascade loads the cascade game configuration.
// Search order: customPath -> ~/.cascade/configs/cascade.yaml -> ./configs/cascade.yaml -> embedded default
func LoadCascade(customPath string) (CascadeConfig, error) {
	var cfg CascadeConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("cascade.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.normalized(), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/cascade.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.normalized(), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCascadeYAML, &cfg); err != nil {
		return DefaultCascadeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalized(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cascade", "configs", filename)
}

// normalized fills zero values in a partially specified config with the
// defaults, so a user file only needs the keys it overrides.
func (c CascadeConfig) normalized() CascadeConfig {
	def := DefaultCascadeConfig()
	if c.Field.Preset == "" {
		c.Field.Preset = def.Field.Preset
	}
	if c.Pacing.BaseFallDelay <= 0 {
		c.Pacing.BaseFallDelay = def.Pacing.BaseFallDelay
	}
	if c.Pacing.MinFallDelay <= 0 {
		c.Pacing.MinFallDelay = def.Pacing.MinFallDelay
	}
	if c.Pacing.LevelSpeedup <= 0 {
		c.Pacing.LevelSpeedup = def.Pacing.LevelSpeedup
	}
	if c.Pacing.LandingsPerSpeedup <= 0 {
		c.Pacing.LandingsPerSpeedup = def.Pacing.LandingsPerSpeedup
	}
	if c.Animation.FlashToggles <= 0 {
		c.Animation.FlashToggles = def.Animation.FlashToggles
	}
	if c.Animation.FlashEveryTicks <= 0 {
		c.Animation.FlashEveryTicks = def.Animation.FlashEveryTicks
	}
	if c.Animation.CascadeEveryTicks <= 0 {
		c.Animation.CascadeEveryTicks = def.Animation.CascadeEveryTicks
	}
	return c
}
