package blog

import (
	"context"

	"github.com/Vraj209/peaknorth-blog-api/app/schedule"
)

type PostStore interface {
	ListAll(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	UpdateStatus(ctx context.Context, id string, fields map[string]any) error
	ListReadyToPublish(ctx context.Context, nowMs int64) ([]Post, error)
	Stats(ctx context.Context) (Stats, error)
}

type IdeaStore interface {
	List(ctx context.Context) ([]Idea, error)
	Create(ctx context.Context, idea *Idea) error
	Delete(ctx context.Context, id string) (bool, error)
	PickNext(ctx context.Context) (*Idea, error)
	MarkUsed(ctx context.Context, id string) error
}

type SettingsStore interface {
	GetCadence(ctx context.Context) (*schedule.CadenceConfig, error)
	UpsertCadence(ctx context.Context, cadence schedule.CadenceConfig) error
}

var _ PostStore = (*PostRepository)(nil)
var _ IdeaStore = (*IdeaRepository)(nil)
var _ SettingsStore = (*SettingsRepository)(nil)
