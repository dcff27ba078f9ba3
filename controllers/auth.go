package controllers

import (
	"Playlister/services/spotify"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Spotify *spotify.Client
	PKCE    *spotify.PKCEStore
}

// @Summary Starts the Spotify authorization flow
// @Description Generates a PKCE pair and redirects the browser to Spotify's authorize page
// @Tags auth
// @Success 302
// @Failure 500 {object} object{error=string}
// @Router /login [get]
func (ac *AuthController) Login(c *gin.Context) {
	state, challenge, err := ac.PKCE.Begin()
	if err != nil {
		log.Printf("[LOGIN-ERROR] Could not generate PKCE pair: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start authorization"})
		return
	}

	c.Redirect(http.StatusFound, ac.Spotify.AuthorizeURL(state, challenge))
}

type callbackRequest struct {
	Code  string `json:"code" form:"code"`
	State string `json:"state" form:"state"`
}

// @Summary Completes the Spotify authorization flow
// @Description Exchanges the authorization code plus the stored PKCE verifier for a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{access_token=string,refresh_token=string}
// @Failure 400 {object} object{error=string}
// @Router /callback [post]
func (ac *AuthController) Callback(c *gin.Context) {
	var req callbackRequest
	// The browser may arrive with query params (GET) or a JSON body (POST).
	req.Code = c.Query("code")
	req.State = c.Query("state")
	if req.Code == "" && c.Request.Method == http.MethodPost {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid callback payload"})
			return
		}
	}

	verifier, found := ac.PKCE.Take(req.State)
	if !found {
		log.Printf("[CALLBACK-ERROR] Unknown or replayed state %q", req.State)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state parameter"})
		return
	}

	body, err := ac.Spotify.ExchangeCode(c.Request.Context(), req.Code, verifier)
	if err != nil {
		log.Printf("[CALLBACK-ERROR] Token exchange failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange code for token"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Refreshes an access token
// @Description Trades the refresh token for a new access token via Spotify
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{access_token=string}
// @Failure 400 {object} object{error=string}
// @Router /refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	body, err := ac.Spotify.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Printf("[REFRESH-ERROR] Token refresh failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to refresh token"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
