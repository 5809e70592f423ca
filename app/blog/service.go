package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Vraj209/peaknorth-blog-api/app/schedule"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrLegacyReadOnly    = errors.New("legacy posts are read-only")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Service applies lifecycle transitions and their side effects. It holds
// no state beyond the injected stores; every operation is a single
// document update with last-write-wins semantics.
type Service struct {
	posts PostStore
	ideas IdeaStore
}

func NewService(posts PostStore, ideas IdeaStore) *Service {
	return &Service{posts: posts, ideas: ideas}
}

// Transition applies a named reviewer action against a post. The schedule
// action is rejected here: a SCHEDULED post must carry a computed slot, and
// only Schedule stamps one.
func (s *Service) Transition(ctx context.Context, id string, action Action) (*Post, error) {
	if action == ActionSchedule {
		return nil, fmt.Errorf("%w: scheduling requires a cadence slot, use the schedule operation", ErrInvalidTransition)
	}

	post, err := s.getMutable(ctx, id)
	if err != nil {
		return nil, err
	}

	target, ok := actionTarget(post.Status, action)
	if !ok {
		return nil, fmt.Errorf("%w: action %s from status %s", ErrInvalidTransition, action, post.Status)
	}

	return s.applyStatus(ctx, post, target)
}

// TransitionTo applies a raw status change, guarded by the transition
// table. This is the surface the external workflow engine drives.
func (s *Service) TransitionTo(ctx context.Context, id string, to Status) (*Post, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %s", ErrInvalidTransition, to)
	}

	post, err := s.getMutable(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(post.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, post.Status, to)
	}

	return s.applyStatus(ctx, post, to)
}

// ForcePublish publishes a post immediately from any reviewer-visible
// stage, bypassing the transition table. Publishing an already-published
// post is a no-op.
func (s *Service) ForcePublish(ctx context.Context, id string) (*Post, error) {
	post, err := s.getMutable(ctx, id)
	if err != nil {
		return nil, err
	}

	// BRIEF and OUTLINE belong to the generator; no human action may move
	// a post out of them.
	if post.Status == StatusBrief || post.Status == StatusOutline {
		return nil, fmt.Errorf("%w: cannot publish from %s", ErrInvalidTransition, post.Status)
	}

	if post.Status == StatusPublished {
		return post, nil
	}

	return s.applyStatus(ctx, post, StatusPublished)
}

// Schedule stamps the next cadence slot onto an approved post and moves it
// to SCHEDULED.
func (s *Service) Schedule(ctx context.Context, id string, cadence schedule.CadenceConfig, now time.Time) (*Post, error) {
	post, err := s.getMutable(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(post.Status, StatusScheduled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, post.Status, StatusScheduled)
	}

	slot, err := schedule.ComputeNextSlot(now, cadence)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"status":      string(StatusScheduled),
		"scheduledAt": slot.ScheduledAt,
		"createAt":    slot.CreateAt,
		"updatedAt":   time.Now().UTC().UnixMilli(),
	}
	if err := s.posts.UpdateStatus(ctx, post.ID, fields); err != nil {
		return nil, err
	}

	post.Status = StatusScheduled
	post.ScheduledAt = slot.ScheduledAt
	post.CreateAt = slot.CreateAt
	return post, nil
}

func (s *Service) getMutable(ctx context.Context, id string) (*Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Legacy {
		return nil, ErrLegacyReadOnly
	}
	return post, nil
}

// applyStatus writes the status change. Entering PUBLISHED sets
// publishedAt exactly once and marks the originating idea used; a failure
// to mark the idea is logged, never surfaced, and never rolls back the
// post update.
func (s *Service) applyStatus(ctx context.Context, post *Post, to Status) (*Post, error) {
	now := time.Now().UTC().UnixMilli()
	fields := map[string]any{
		"status":    string(to),
		"updatedAt": now,
	}

	firstPublish := to == StatusPublished && post.PublishedAt == 0
	if firstPublish {
		fields["publishedAt"] = now
	}

	if err := s.posts.UpdateStatus(ctx, post.ID, fields); err != nil {
		return nil, err
	}

	post.Status = to
	post.UpdatedAt = now
	if firstPublish {
		post.PublishedAt = now

		if post.IdeaID != "" {
			if err := s.ideas.MarkUsed(ctx, post.IdeaID); err != nil {
				slog.Warn("Failed to mark originating idea as used", "post", post.ID, "idea", post.IdeaID, "error", err)
			}
		}
	}

	return post, nil
}
