package cfg

// Cfg holds the resolved application configuration.
type Cfg struct {
	Port          string
	APIAccessKey  string
	StoreDriver   string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
	SettingsFile  string
	Debug         bool
	Version       string
}
