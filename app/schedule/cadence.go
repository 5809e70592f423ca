package schedule

import (
	"fmt"
	"time"
)

// CadenceConfig is the publishing cadence policy, stored as the
// settings/cadence singleton document and edited from the dashboard.
type CadenceConfig struct {
	IntervalDays   int    `json:"intervalDays" yaml:"interval_days"`
	PublishHour    int    `json:"publishHour" yaml:"publish_hour"`
	Timezone       string `json:"timezone" yaml:"timezone"`
	DraftLeadHours int    `json:"draftLeadHours" yaml:"draft_lead_hours"`
	ReminderHours  int    `json:"reminderHours,omitempty" yaml:"reminder_hours"`
}

// Validate checks the config against the documented bounds. Callers must
// treat a validation failure as "do not schedule", never as a fallback.
func (c CadenceConfig) Validate() error {
	if c.IntervalDays < 1 {
		return fmt.Errorf("interval days must be at least 1, got %d", c.IntervalDays)
	}
	if c.PublishHour < 0 || c.PublishHour > 23 {
		return fmt.Errorf("publish hour must be between 0 and 23, got %d", c.PublishHour)
	}
	if c.DraftLeadHours < 1 {
		return fmt.Errorf("draft lead hours must be at least 1, got %d", c.DraftLeadHours)
	}
	if c.ReminderHours < 0 {
		return fmt.Errorf("reminder hours must be non-negative, got %d", c.ReminderHours)
	}
	if c.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}
