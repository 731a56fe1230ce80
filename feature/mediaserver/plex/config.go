package plex

// Config holds the Plex Media Server connection.
type Config struct {
	// URL is the server root, e.g. http://192.168.1.10:32400.
	URL string `mapstructure:"url" default:""`
	// Token is the X-Plex-Token used for every request.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestsPerSecond caps the request rate against the server.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"10"`
}

// Configured reports whether both the URL and the token are set.
func (c Config) Configured() bool {
	return c.URL != "" && c.Token != ""
}
