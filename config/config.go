package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	Port               string
	Prod               bool
	SessionKey         string
	SpotifyClientID    string
	SpotifyRedirectURL string
	UpstreamTimeout    time.Duration
	// Whether the first joiner of a room created through join_room (guest
	// joined an unknown code) is promoted to host.
	PromoteFirstJoiner bool
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env file: %v", err)
	}

	return &Config{
		Port:               getEnvOrDefault("PORT", "5000"),
		Prod:               os.Getenv("PROD") == "true",
		SessionKey:         getEnvOrDefault("SESSION_KEY", "playlister-session"),
		SpotifyClientID:    getEnvOrDefault("SPOTIFY_CLIENT_ID", "your_client_id"),
		SpotifyRedirectURL: os.Getenv("SPOTIFY_REDIRECT_URL"),
		UpstreamTimeout:    getDurationOrDefault("UPSTREAM_TIMEOUT", "10s"),
		PromoteFirstJoiner: getEnvOrDefault("PROMOTE_FIRST_JOINER", "true") == "true",
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key, defaultValue string) time.Duration {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return duration
}
