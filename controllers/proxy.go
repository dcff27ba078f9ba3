package controllers

import (
	"Playlister/services/spotify"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// ProxyController forwards authenticated read calls to the Spotify Web
// API. It is stateless: the caller's bearer token rides along, the
// upstream status and JSON body come back verbatim, nothing is cached and
// nothing is retried.
type ProxyController struct {
	Spotify *spotify.Client
}

// @Summary Current user's Spotify profile
// @Tags proxy
// @Produce json
// @Param Authorization header string true "Bearer Spotify access token"
// @Success 200 {object} object
// @Failure 401 {object} object{error=string}
// @Router /api/me [get]
func (pc *ProxyController) Me(c *gin.Context) {
	pc.forward(c, "/v1/me", nil)
}

// @Summary Search the Spotify catalog
// @Tags proxy
// @Produce json
// @Param Authorization header string true "Bearer Spotify access token"
// @Param q query string true "Search query"
// @Param type query string false "Result type" default(track)
// @Param limit query string false "Result count" default(20)
// @Success 200 {object} object
// @Failure 401 {object} object{error=string}
// @Router /api/search [get]
func (pc *ProxyController) Search(c *gin.Context) {
	query := url.Values{
		"q":     {c.Query("q")},
		"type":  {c.DefaultQuery("type", "track")},
		"limit": {c.DefaultQuery("limit", "20")},
	}
	pc.forward(c, "/v1/search", query)
}

// @Summary Current user's playlists
// @Tags proxy
// @Produce json
// @Param Authorization header string true "Bearer Spotify access token"
// @Success 200 {object} object
// @Failure 401 {object} object{error=string}
// @Router /api/playlists [get]
func (pc *ProxyController) Playlists(c *gin.Context) {
	pc.forward(c, "/v1/me/playlists", nil)
}

// @Summary Tracks of one playlist
// @Tags proxy
// @Produce json
// @Param Authorization header string true "Bearer Spotify access token"
// @Param id path string true "Playlist id"
// @Success 200 {object} object
// @Failure 401 {object} object{error=string}
// @Router /api/playlists/{id}/tracks [get]
func (pc *ProxyController) PlaylistTracks(c *gin.Context) {
	pc.forward(c, "/v1/playlists/"+c.Param("id")+"/tracks", nil)
}

func (pc *ProxyController) forward(c *gin.Context, path string, query url.Values) {
	authorization := c.GetHeader("Authorization")
	if authorization == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
		return
	}

	status, body, err := pc.Spotify.Get(c.Request.Context(), path, query, authorization)
	if err != nil {
		log.Printf("[PROXY-ERROR] GET %s: %v", path, err)
		if errors.Is(err, spotify.ErrUpstreamTimeout) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Upstream timeout"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(status, "application/json", body)
}
