package discounts

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// DiscountConfig represents the discount/detail-code configuration structure
type DiscountConfig struct {
	Codes map[string]CodeEntry `json:"codes"`
}

// CodeEntry describes one discount/detail code from the config file
type CodeEntry struct {
	Label   string `json:"label"`
	Percent int    `json:"percent,omitempty"`
	Active  bool   `json:"active"`
}

// Engine resolves discount/detail codes to the display strings the meta line
// composer consumes, based on JSON configuration
type Engine struct {
	config *DiscountConfig
}

var engineInstance *Engine

// NewEngine creates a new discount engine instance
func NewEngine(configPath string) (*Engine, error) {
	if engineInstance != nil {
		return engineInstance, nil
	}

	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read discount config: %w", err)
	}

	var config DiscountConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse discount config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid discount config: %w", err)
	}

	engine := &Engine{config: &config}
	engineInstance = engine
	log.Printf("✅ DiscountEngine: loaded %d codes from %s", len(config.Codes), configPath)
	return engine, nil
}

func validateConfig(config *DiscountConfig) error {
	if len(config.Codes) == 0 {
		return fmt.Errorf("codes are required")
	}
	for code, entry := range config.Codes {
		if entry.Label == "" && entry.Percent == 0 {
			return fmt.Errorf("code %q needs a label or a percent", code)
		}
		if entry.Percent < 0 || entry.Percent > 100 {
			return fmt.Errorf("code %q has percent out of range: %d", code, entry.Percent)
		}
	}
	return nil
}

// GetEngine returns the singleton discount engine instance
func GetEngine() *Engine {
	return engineInstance
}

// Resolve maps a discount/detail code to its display string. Unknown or
// inactive codes resolve to nothing so the meta line simply omits them.
func (e *Engine) Resolve(code string) (string, bool) {
	if e == nil || code == "" {
		return "", false
	}
	entry, ok := e.config.Codes[code]
	if !ok || !entry.Active {
		return "", false
	}
	if entry.Percent > 0 && entry.Label != "" {
		return fmt.Sprintf("%s (%d%% off)", entry.Label, entry.Percent), true
	}
	if entry.Percent > 0 {
		return fmt.Sprintf("%d%% off", entry.Percent), true
	}
	return entry.Label, true
}
