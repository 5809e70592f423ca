package docstore

import (
	"context"
	"time"
)

// Collections used by the blog automation pipeline. The legacy collection
// predates the automation schema and is never written by this service.
const (
	CollectionPosts       = "blog_posts"
	CollectionLegacyPosts = "posts"
	CollectionIdeas       = "blog_ideas"
	CollectionSettings    = "settings"
)

// Document is a raw JSON document plus the store-side timestamps.
// Data is nil when the stored payload could not be decoded; callers are
// expected to degrade gracefully rather than fail a whole listing.
type Document struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the document database contract. Get returns (nil, nil) when the
// document does not exist. Merge performs a shallow field merge, creating
// the document when absent. There is no optimistic concurrency: last write
// wins, matching the semantics of the backing document databases.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Set(ctx context.Context, collection, id string, data map[string]any) error
	Merge(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Close(ctx context.Context) error
}
