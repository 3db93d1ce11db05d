package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gridironhq/sportwire/internal/models"
)

var validate = validator.New()

// LoadSources reads the source list from the JSON file at path and validates
// every entry. A file that parses but contains an invalid source is a fatal
// configuration error, not something to degrade around.
func LoadSources(path string) ([]models.SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file %s: %w", path, err)
	}

	var sources []models.SourceConfig
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}

	for i := range sources {
		if sources[i].Priority == "" {
			sources[i].Priority = models.PriorityNormal
		}
		if err := validate.Struct(&sources[i]); err != nil {
			return nil, fmt.Errorf("invalid source %q (%s): %w", sources[i].Name, sources[i].URL, err)
		}
	}

	return sources, nil
}

// EnabledSources filters the list down to sources marked enabled,
// preserving configured order.
func EnabledSources(sources []models.SourceConfig) []models.SourceConfig {
	enabled := make([]models.SourceConfig, 0, len(sources))
	for _, src := range sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}
	return enabled
}
