package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Vraj209/peaknorth-blog-api/app/docstore"
)

// IdeaRepository manages the idea queue.
type IdeaRepository struct {
	store docstore.Store
}

func NewIdeaRepository(store docstore.Store) *IdeaRepository {
	return &IdeaRepository{store: store}
}

// List returns all ideas, newest first.
func (r *IdeaRepository) List(ctx context.Context) ([]Idea, error) {
	docs, err := r.store.List(ctx, docstore.CollectionIdeas)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}

	ideas := make([]Idea, 0, len(docs))
	for _, doc := range docs {
		ideas = append(ideas, NormalizeIdea(doc))
	}

	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].CreatedAt > ideas[j].CreatedAt
	})

	return ideas, nil
}

// Create stores a new idea in UNUSED status.
func (r *IdeaRepository) Create(ctx context.Context, idea *Idea) error {
	if idea.Topic == "" {
		return fmt.Errorf("idea topic is required")
	}
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	if idea.Priority == "" {
		idea.Priority = PriorityMedium
	}
	if idea.Status == "" {
		idea.Status = IdeaStatusUnused
	}

	now := time.Now().UTC().UnixMilli()
	if idea.CreatedAt == 0 {
		idea.CreatedAt = now
	}
	idea.UpdatedAt = now

	payload, err := json.Marshal(idea)
	if err != nil {
		return fmt.Errorf("failed to encode idea %s: %w", idea.ID, err)
	}
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("failed to encode idea %s: %w", idea.ID, err)
	}

	if err := r.store.Set(ctx, docstore.CollectionIdeas, idea.ID, data); err != nil {
		return fmt.Errorf("failed to create idea %s: %w", idea.ID, err)
	}
	return nil
}

// Delete removes an idea, reporting whether it existed.
func (r *IdeaRepository) Delete(ctx context.Context, id string) (bool, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionIdeas, id)
	if err != nil {
		return false, fmt.Errorf("failed to get idea %s: %w", id, err)
	}
	if doc == nil {
		return false, nil
	}

	if err := r.store.Delete(ctx, docstore.CollectionIdeas, id); err != nil {
		return false, fmt.Errorf("failed to delete idea %s: %w", id, err)
	}
	return true, nil
}

// PickNext selects the next unused idea: highest priority first, oldest
// first within a priority. Returns (nil, nil) when the queue is empty.
func (r *IdeaRepository) PickNext(ctx context.Context) (*Idea, error) {
	ideas, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []Idea
	for _, idea := range ideas {
		if idea.Status == IdeaStatusUnused {
			candidates = append(candidates, idea)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority.weight() != candidates[j].Priority.weight() {
			return candidates[i].Priority.weight() > candidates[j].Priority.weight()
		}
		return candidates[i].CreatedAt < candidates[j].CreatedAt
	})

	return &candidates[0], nil
}

// MarkUsed moves an idea to USED status (canonical write form; the legacy
// boolean flag is only honored at the read boundary).
func (r *IdeaRepository) MarkUsed(ctx context.Context, id string) error {
	doc, err := r.store.Get(ctx, docstore.CollectionIdeas, id)
	if err != nil {
		return fmt.Errorf("failed to get idea %s: %w", id, err)
	}
	if doc == nil {
		return fmt.Errorf("idea %s not found", id)
	}

	fields := map[string]any{
		"status":    string(IdeaStatusUsed),
		"updatedAt": time.Now().UTC().UnixMilli(),
	}
	if err := r.store.Merge(ctx, docstore.CollectionIdeas, id, fields); err != nil {
		return fmt.Errorf("failed to mark idea %s used: %w", id, err)
	}
	return nil
}
