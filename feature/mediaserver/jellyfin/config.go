package jellyfin

// Config holds the Jellyfin server connection.
type Config struct {
	// URL is the server root, e.g. http://192.168.1.10:8096.
	URL string `mapstructure:"url" default:""`
	// APIKey is sent as X-Emby-Token.
	APIKey string `mapstructure:"api_key" default:""`
	// UserID scopes library queries. Empty selects the first user of the server.
	UserID string `mapstructure:"user_id" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestsPerSecond caps the request rate against the server.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"10"`
}

// Configured reports whether both the URL and the API key are set.
func (c Config) Configured() bool {
	return c.URL != "" && c.APIKey != ""
}
