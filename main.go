package main

import (
	"Playlister/config"
	_ "Playlister/config/swagger"
	"Playlister/middleware"
	"Playlister/routes"
	"Playlister/services/rooms"
	"Playlister/services/socket_io"
	"Playlister/services/spotify"
	"log"

	"github.com/gin-gonic/gin"
)

// @title Playlister API
// @version 1.0
// @description Gin-Gonic server for the Playlister shared-queue rooms
// @host localhost:5000
// @BasePath /
func main() {
	log.Println("Setting up server...")
	cfg := config.Load()

	if cfg.Prod {
		gin.SetMode(gin.ReleaseMode)
	}

	// All room state lives in this one registry for the process lifetime.
	registry := rooms.NewRegistry(cfg.PromoteFirstJoiner)
	spotifyClient := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyRedirectURL, cfg.UpstreamTimeout)
	pkceStore := spotify.NewPKCEStore()

	r := gin.Default()

	middleware.SetUpMiddleware(r, cfg.SessionKey)

	routes.SetupRoutes(r, registry, spotifyClient, pkceStore)

	var sio socket_io.MySocketServer
	sio.Start(r, registry)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
