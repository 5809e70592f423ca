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

// PostRepository presents the unified post view over the automation and
// legacy collections. Reads merge both; mutations touch only the
// automation collection.
type PostRepository struct {
	store docstore.Store
}

func NewPostRepository(store docstore.Store) *PostRepository {
	return &PostRepository{store: store}
}

// ListAll returns every post from both collections, normalized and sorted
// by creation time descending.
func (r *PostRepository) ListAll(ctx context.Context) ([]Post, error) {
	autoDocs, err := r.store.List(ctx, docstore.CollectionPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	legacyDocs, err := r.store.List(ctx, docstore.CollectionLegacyPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to list legacy posts: %w", err)
	}

	posts := make([]Post, 0, len(autoDocs)+len(legacyDocs))
	for _, doc := range autoDocs {
		posts = append(posts, NormalizePost(doc))
	}
	for _, doc := range legacyDocs {
		post := NormalizePost(doc)
		post.Legacy = true
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})

	return posts, nil
}

// Get looks up a single post, checking the automation collection first and
// falling back to the legacy collection. Returns (nil, nil) when unknown.
func (r *PostRepository) Get(ctx context.Context, id string) (*Post, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionPosts, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	if doc != nil {
		post := NormalizePost(*doc)
		return &post, nil
	}

	doc, err = r.store.Get(ctx, docstore.CollectionLegacyPosts, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get legacy post %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}

	post := NormalizePost(*doc)
	post.Legacy = true
	return &post, nil
}

// Create stores a new post in the automation collection. A missing ID is
// assigned, a missing status defaults to BRIEF.
func (r *PostRepository) Create(ctx context.Context, post *Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Status == "" {
		post.Status = StatusBrief
	}
	if !post.Status.Valid() {
		return fmt.Errorf("invalid post status: %s", post.Status)
	}

	now := time.Now().UTC().UnixMilli()
	if post.CreatedAt == 0 {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	data, err := postToData(post)
	if err != nil {
		return err
	}

	if err := r.store.Set(ctx, docstore.CollectionPosts, post.ID, data); err != nil {
		return fmt.Errorf("failed to create post %s: %w", post.ID, err)
	}
	return nil
}

// Update replaces a post document in the automation collection.
func (r *PostRepository) Update(ctx context.Context, post *Post) error {
	if post.ID == "" {
		return fmt.Errorf("post id is required")
	}
	if post.Legacy {
		return fmt.Errorf("legacy posts are read-only")
	}

	post.UpdatedAt = time.Now().UTC().UnixMilli()

	data, err := postToData(post)
	if err != nil {
		return err
	}

	if err := r.store.Set(ctx, docstore.CollectionPosts, post.ID, data); err != nil {
		return fmt.Errorf("failed to update post %s: %w", post.ID, err)
	}
	return nil
}

// UpdateStatus merges status-change fields into a post document.
func (r *PostRepository) UpdateStatus(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Merge(ctx, docstore.CollectionPosts, id, fields); err != nil {
		return fmt.Errorf("failed to update status of post %s: %w", id, err)
	}
	return nil
}

// ListReadyToPublish returns non-legacy posts the external engine may
// publish: approved or scheduled, with a publish slot at or before nowMs.
func (r *PostRepository) ListReadyToPublish(ctx context.Context, nowMs int64) ([]Post, error) {
	posts, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ready := make([]Post, 0)
	for _, post := range posts {
		if post.Legacy {
			continue
		}
		if post.Status != StatusApproved && post.Status != StatusScheduled {
			continue
		}
		if post.ScheduledAt == 0 || post.ScheduledAt > nowMs {
			continue
		}
		ready = append(ready, post)
	}

	return ready, nil
}

// Stats computes the dashboard counts by scanning the merged set.
func (r *PostRepository) Stats(ctx context.Context) (Stats, error) {
	posts, err := r.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(posts)}
	for _, post := range posts {
		switch post.Status {
		case StatusPublished:
			stats.Published++
		case StatusApproved, StatusScheduled:
			stats.Scheduled++
		case StatusNeedsReview, StatusRegenerate:
			stats.NeedsReview++
		case StatusBrief, StatusOutline, StatusDraft:
			stats.Drafts++
		}
	}

	return stats, nil
}

// postToData serializes a post into the raw document payload. The legacy
// marker is view-only state and never persisted.
func postToData(post *Post) (map[string]any, error) {
	clone := *post
	clone.Legacy = false

	payload, err := json.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("failed to encode post %s: %w", post.ID, err)
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to encode post %s: %w", post.ID, err)
	}
	return data, nil
}
