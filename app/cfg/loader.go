package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" required:"true" description:"Shared secret expected in the X-API-Key header (required)"`

	// Document store configuration
	StoreDriver   string `long:"store-driver" env:"STORE_DRIVER" default:"sqlite" choice:"sqlite" choice:"mongo" choice:"memory" description:"Document store driver"`
	SQLitePath    string `long:"sqlite-path" env:"SQLITE_PATH" default:"./peaknorth.db" description:"SQLite database file (sqlite driver)"`
	MongoURI      string `long:"mongo-uri" env:"MONGO_URI" default:"mongodb://localhost:27017" description:"MongoDB connection URI (mongo driver)"`
	MongoDatabase string `long:"mongo-database" env:"MONGO_DATABASE" default:"peaknorth" description:"MongoDB database name (mongo driver)"`

	// Application configuration
	SettingsFile string `long:"settings-file" env:"SETTINGS_FILE" description:"Optional YAML file with default cadence settings, seeded on first start"`
	Debug        bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &Cfg{
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		StoreDriver:   raw.StoreDriver,
		SQLitePath:    raw.SQLitePath,
		MongoURI:      raw.MongoURI,
		MongoDatabase: raw.MongoDatabase,
		SettingsFile:  raw.SettingsFile,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}, nil
}
