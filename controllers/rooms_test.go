package controllers

import (
	"Playlister/models"
	"Playlister/services/rooms"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRoomRouter(registry *rooms.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := &RoomController{Registry: registry}
	router := gin.New()
	router.POST("/api/rooms", controller.CreateRoom)
	router.GET("/api/rooms/:code", controller.GetRoomInfo)
	return router
}

func TestCreateRoomReturnsCode(t *testing.T) {
	router := setupRoomRouter(rooms.NewRegistry(true))

	req, _ := http.NewRequest("POST", "/api/rooms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	fmt.Println("Response:", w.Body.String())
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response["roomCode"], 6)
}

func TestGetRoomInfoUnknownCode(t *testing.T) {
	router := setupRoomRouter(rooms.NewRegistry(true))

	req, _ := http.NewRequest("GET", "/api/rooms/ZZZZZZ", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["exists"])
	assert.NotContains(t, response, "queue")
}

func TestGetRoomInfoLiveRoom(t *testing.T) {
	registry := rooms.NewRegistry(true)
	snap, _ := registry.CreateRoom("conn-1", "DJ")
	registry.JoinRoom(snap.Code, "conn-2", "Alice")
	registry.AddTrack(snap.Code, "conn-2", models.QueuedTrack{Name: "X"})

	router := setupRoomRouter(registry)

	req, _ := http.NewRequest("GET", "/api/rooms/"+snap.Code, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	fmt.Println("Response:", w.Body.String())
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Exists    bool                 `json:"exists"`
		Queue     []models.QueuedTrack `json:"queue"`
		Users     []models.Member      `json:"users"`
		UserCount int                  `json:"userCount"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Exists)
	assert.Equal(t, 2, response.UserCount)
	assert.Len(t, response.Queue, 1)
	assert.Equal(t, "X", response.Queue[0].Name)
	assert.Equal(t, "Alice", response.Queue[0].AddedBy)
}

func TestGetRoomInfoIsCaseInsensitive(t *testing.T) {
	registry := rooms.NewRegistry(true)
	registry.JoinRoom("AB12CD", "conn-1", "Host")

	router := setupRoomRouter(registry)

	req, _ := http.NewRequest("GET", "/api/rooms/ab12cd", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["exists"])
}
