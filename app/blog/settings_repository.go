package blog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vraj209/peaknorth-blog-api/app/docstore"
	"github.com/Vraj209/peaknorth-blog-api/app/schedule"
)

// cadenceDocumentID is the singleton settings document consumed by the
// scheduling calculator.
const cadenceDocumentID = "cadence"

// SettingsRepository manages the settings collection.
type SettingsRepository struct {
	store docstore.Store
}

func NewSettingsRepository(store docstore.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// GetCadence reads the cadence singleton. Returns (nil, nil) when it has
// not been configured yet.
func (r *SettingsRepository) GetCadence(ctx context.Context) (*schedule.CadenceConfig, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionSettings, cadenceDocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cadence settings: %w", err)
	}
	if doc == nil || doc.Data == nil {
		return nil, nil
	}

	payload, err := json.Marshal(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cadence settings: %w", err)
	}

	var cadence schedule.CadenceConfig
	if err := json.Unmarshal(payload, &cadence); err != nil {
		return nil, fmt.Errorf("failed to decode cadence settings: %w", err)
	}

	return &cadence, nil
}

// UpsertCadence validates and stores the cadence singleton.
func (r *SettingsRepository) UpsertCadence(ctx context.Context, cadence schedule.CadenceConfig) error {
	if err := cadence.Validate(); err != nil {
		return fmt.Errorf("invalid cadence config: %w", err)
	}

	data := map[string]any{
		"intervalDays":   cadence.IntervalDays,
		"publishHour":    cadence.PublishHour,
		"timezone":       cadence.Timezone,
		"draftLeadHours": cadence.DraftLeadHours,
		"reminderHours":  cadence.ReminderHours,
	}

	if err := r.store.Set(ctx, docstore.CollectionSettings, cadenceDocumentID, data); err != nil {
		return fmt.Errorf("failed to store cadence settings: %w", err)
	}
	return nil
}
