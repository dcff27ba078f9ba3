package routes

import (
	"Playlister/controllers"
	"Playlister/services/rooms"
	"Playlister/services/spotify"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, registry *rooms.Registry,
	spotifyClient *spotify.Client, pkceStore *spotify.PKCEStore) {

	// Create controllers
	authController := &controllers.AuthController{Spotify: spotifyClient, PKCE: pkceStore}
	proxyController := &controllers.ProxyController{Spotify: spotifyClient}
	roomController := &controllers.RoomController{Registry: registry}

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/ping", controllers.Ping)

	// Authorization flow
	router.GET("/login", authController.Login)
	router.GET("/callback", authController.Callback)
	router.POST("/callback", authController.Callback)
	router.POST("/refresh", authController.Refresh)

	// API routes group
	api := router.Group("/api")
	{
		// Spotify proxy
		api.GET("/me", proxyController.Me)
		api.GET("/search", proxyController.Search)
		api.GET("/playlists", proxyController.Playlists)
		api.GET("/playlists/:id/tracks", proxyController.PlaylistTracks)

		// Room lookup (the realtime protocol lives on /socket.io)
		api.POST("/rooms", roomController.CreateRoom)
		api.GET("/rooms/:code", roomController.GetRoomInfo)
	}
}
