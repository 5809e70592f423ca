package blog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Vraj209/peaknorth-blog-api/app/schedule"
)

type settingsFile struct {
	Cadence schedule.CadenceConfig `yaml:"cadence"`
}

// LoadCadenceDefaults reads a YAML file with default cadence settings,
// used to seed the settings/cadence document on first start.
func LoadCadenceDefaults(path string) (*schedule.CadenceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	cadence := file.Cadence
	if cadence.IntervalDays == 0 {
		cadence.IntervalDays = 7
	}
	if cadence.DraftLeadHours == 0 {
		cadence.DraftLeadHours = 24
	}
	if cadence.Timezone == "" {
		cadence.Timezone = "UTC"
	}

	if err := cadence.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	return &cadence, nil
}
