// Package config loads the application configuration.
//
// Values come from the process environment, optionally seeded from a .env file
// in the working directory. Nested keys map to upper-case environment names
// with underscores, so plex.url is read from PLEX_URL and
// matching.album_threshold from MATCHING_ALBUM_THRESHOLD.
//
// Defaults are declared next to each field with a `default` struct tag and are
// registered with viper by reflection, which also makes every key visible to
// AutomaticEnv.
//
// The loaded Config is a plain value. Commands build it once and pass the
// relevant sections into constructors; nothing reads settings globally.
package config
