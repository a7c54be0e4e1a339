package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.matrix-runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files only need to name the keys they override; everything else keeps its default.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := embeddedRunner()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("runner.yaml"), filepath.Join("configs", "runner.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		override := cfg
		if err := yaml.Unmarshal(data, &override); err != nil {
			continue
		}
		if err := override.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
		return override, nil
	}

	return cfg, nil
}

// embeddedRunner decodes the embedded YAML on top of the hardcoded defaults.
func embeddedRunner() RunnerConfig {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".matrix-runner", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Initial = InitialLevelForPreset(preset)
	if cfg.Difficulty.Max < cfg.Difficulty.Initial {
		cfg.Difficulty.Max = cfg.Difficulty.Initial
	}

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Progression.PerPoint /= 2
	case DifficultyHard:
		cfg.PowerUps.Chance /= 2
	}
}
