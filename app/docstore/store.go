package docstore

import (
	"context"
	"fmt"
)

// Options selects and configures a store driver.
type Options struct {
	Driver        string // "sqlite", "mongo" or "memory"
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
}

// Open creates a store instance based on the configured driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "sqlite":
		return OpenSQLite(opts.SQLitePath)
	case "mongo":
		return OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase)
	case "memory":
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", opts.Driver)
	}
}
