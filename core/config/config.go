package config

import (
	"reflect"
	"strings"

	"releasedrop/core/database"
	"releasedrop/core/logger"
	"releasedrop/core/server"
	"releasedrop/core/storage"
	"releasedrop/feature/catalog"
	"releasedrop/feature/mediaserver/jellyfin"
	"releasedrop/feature/mediaserver/plex"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used by sweep reports.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Plex holds the Plex Media Server connection.
	Plex plex.Config `mapstructure:"plex"`
	// Jellyfin holds the Jellyfin server connection.
	Jellyfin jellyfin.Config `mapstructure:"jellyfin"`
	// Catalog holds the music catalog credentials.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Matching holds the fuzzy matching thresholds.
	Matching Matching `mapstructure:"matching"`
	// Sweep holds the bulk check settings.
	Sweep Sweep `mapstructure:"sweep"`
}

// Matching holds the similarity thresholds used by the reconciliation engine.
type Matching struct {
	AlbumThreshold  float64 `mapstructure:"album_threshold" default:"0.85"`
	TrackThreshold  float64 `mapstructure:"track_threshold" default:"0.90"`
	ArtistThreshold float64 `mapstructure:"artist_threshold" default:"0.85"`
}

// Sweep holds the settings for checking many releases at once.
type Sweep struct {
	// Parallelism is the number of releases reconciled concurrently.
	Parallelism int `mapstructure:"parallelism" default:"4"`
	// LibraryTimeoutSeconds bounds the provider calls made for one library.
	LibraryTimeoutSeconds int `mapstructure:"library_timeout_seconds" default:"30"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. PLEX_URL -> plex.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
