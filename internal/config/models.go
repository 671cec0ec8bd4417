package config

// StoreConfig represents the configuration for the durable store
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// ScorerConfig represents the configuration for the message scorer
type ScorerConfig struct {
	Type       string
	ScriptPath string
	Timeout    string
}

// ServerConfig represents the configuration for the HTTP server
type ServerConfig struct {
	ListenAddress string
	AdminToken    string
}

// GetStore returns the store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetScorer returns the scorer configuration
func (c *Config) GetScorer() ScorerConfig {
	return ScorerConfig{
		Type:       c.GetString("scorer.type"),
		ScriptPath: c.GetString("scorer.script_path"),
		Timeout:    c.GetString("scorer.timeout"),
	}
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		AdminToken:    c.GetString("server.admin_token"),
	}
}
