package config

import (
	_ "embed"
)

//go:embed defaults/cascade.yaml
var defaultCascadeYAML []byte

// DefaultCascadeConfig returns the default cascade configuration.
func DefaultCascadeConfig() CascadeConfig {
	return CascadeConfig{
		Field: FieldConfig{
			Preset: FieldPresetStandard,
		},
		Pacing: PacingConfig{
			BaseFallDelay:      30,
			MinFallDelay:       2,
			LevelSpeedup:       2,
			LandingsPerSpeedup: 8,
		},
		Animation: AnimationConfig{
			FlashToggles:      6,
			FlashEveryTicks:   4,
			CascadeEveryTicks: 3,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "cascade", "cascade_large":
		return defaultCascadeYAML
	default:
		return nil
	}
}
