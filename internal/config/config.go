package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// IMDB rating provider
	IMDBAPIKey string
	IMDBURL    string

	// TMDB cross-reference
	TMDBAPIKey string
	TMDBURL    string

	// Radarr
	RadarrAPIKey         string
	RadarrURL            string
	RadarrDefaultQuality int // quality profile id applied to every submission

	// Root folders, picked by genre
	RootFolderOther      string
	RootFolderAnimations string

	// Scheduling
	ScanCron string // cron spec for the daily scan

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/autoradarr.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("IMDB_URL", "https://imdb-api.com/ru/API")
	viper.SetDefault("TMDB_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("RADARR_DEFAULT_QUALITY", 1)
	viper.SetDefault("SCAN_CRON", "0 3 * * *")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "autoradarr")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		IMDBAPIKey: viper.GetString("IMDB_APIKEY"),
		IMDBURL:    viper.GetString("IMDB_URL"),
		TMDBAPIKey: viper.GetString("TMDB_APIKEY"),
		TMDBURL:    viper.GetString("TMDB_URL"),

		RadarrAPIKey:         viper.GetString("RADARR_APIKEY"),
		RadarrURL:            viper.GetString("RADARR_URL"),
		RadarrDefaultQuality: viper.GetInt("RADARR_DEFAULT_QUALITY"),

		RootFolderOther:      viper.GetString("RADARR_ROOT_OTHER"),
		RootFolderAnimations: viper.GetString("RADARR_ROOT_ANIMATIONS"),

		ScanCron:   viper.GetString("SCAN_CRON"),
		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile: filepath.Join(configDir, "autoradarr.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.IMDBAPIKey == "" {
		return nil, fmt.Errorf("IMDB_APIKEY is required")
	}
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_APIKEY is required")
	}
	if config.RadarrAPIKey == "" {
		return nil, fmt.Errorf("RADARR_APIKEY is required")
	}
	if config.RadarrURL == "" {
		return nil, fmt.Errorf("RADARR_URL is required")
	}
	if config.RootFolderOther == "" {
		return nil, fmt.Errorf("RADARR_ROOT_OTHER is required")
	}
	if config.RootFolderAnimations == "" {
		return nil, fmt.Errorf("RADARR_ROOT_ANIMATIONS is required")
	}

	return config, nil
}
