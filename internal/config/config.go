// Package config provides YAML-based game configuration loading and
// difficulty presets for the cascade platform.
package config

// CascadeConfig contains all configuration for the cascade game.
type CascadeConfig struct {
	Field     FieldConfig     `yaml:"field"`
	Pacing    PacingConfig    `yaml:"pacing"`
	Animation AnimationConfig `yaml:"animation"`
}

// FieldConfig selects the playfield dimensions.
type FieldConfig struct {
	Preset string `yaml:"preset"` // "standard" (20x10) or "large" (30x15)
}

// PacingConfig defines how fast pieces fall and how the pace tightens.
type PacingConfig struct {
	BaseFallDelay      int `yaml:"base_fall_delay"`      // Ticks per row at level 1
	MinFallDelay       int `yaml:"min_fall_delay"`       // Fastest allowed fall
	LevelSpeedup       int `yaml:"level_speedup"`        // Delay reduction per level
	LandingsPerSpeedup int `yaml:"landings_per_speedup"` // Landings per extra delay reduction
}

// AnimationConfig defines the pacing of the non-gravity phases.
type AnimationConfig struct {
	FlashToggles      int `yaml:"flash_toggles"`       // Blinks before a full row is erased
	FlashEveryTicks   int `yaml:"flash_every_ticks"`   // Ticks per blink
	CascadeEveryTicks int `yaml:"cascade_every_ticks"` // Ticks per one-row group descent
}

// Field preset names accepted in FieldConfig.
const (
	FieldPresetStandard = "standard"
	FieldPresetLarge    = "large"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplyCascadePreset modifies the pacing based on a difficulty preset.
// Normal leaves the loaded config untouched.
func ApplyCascadePreset(cfg *CascadeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Pacing.BaseFallDelay = 40
		cfg.Pacing.LevelSpeedup = 1
		cfg.Pacing.LandingsPerSpeedup = 16
	case DifficultyHard:
		cfg.Pacing.BaseFallDelay = 20
		cfg.Pacing.LevelSpeedup = 3
		cfg.Pacing.LandingsPerSpeedup = 6
	}
}

// ValidPreset reports whether the difficulty preset name is known.
func ValidPreset(preset DifficultyPreset) bool {
	switch preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}
