package controllers

import (
	"Playlister/services/rooms"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Registry *rooms.Registry
}

// @Summary Generates a new room code
// @Description Returns a code not used by any live room. The room itself comes into existence when its first member joins over the socket channel.
// @Tags rooms
// @Produce json
// @Success 200 {object} object{roomCode=string}
// @Failure 500 {object} object{error=string}
// @Router /api/rooms [post]
func (rc *RoomController) CreateRoom(c *gin.Context) {
	code, err := rc.Registry.NewCode()
	if err != nil {
		log.Printf("[ROOMS-ERROR] Could not generate room code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate room code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roomCode": code})
}

// @Summary Looks up a room by code
// @Description Tells whether the room exists and, if so, returns its queue and member list
// @Tags rooms
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} object{exists=bool,queue=array,users=array,userCount=integer}
// @Router /api/rooms/{code} [get]
func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	snap, found := rc.Registry.Lookup(c.Param("code"))
	if !found {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":    true,
		"queue":     snap.Queue,
		"users":     snap.Users,
		"userCount": len(snap.Users),
	})
}
