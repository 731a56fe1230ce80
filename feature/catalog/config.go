package catalog

// Config holds the Spotify application credentials.
type Config struct {
	SpotifyClientID     string `mapstructure:"spotify_client_id" default:""`
	SpotifyClientSecret string `mapstructure:"spotify_client_secret" default:""`
	// ReleaseMonthsBack is how many thirty-day months a refresh looks back.
	ReleaseMonthsBack int `mapstructure:"release_months_back" default:"3"`
}

// Configured reports whether both credentials are set.
func (c Config) Configured() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}
