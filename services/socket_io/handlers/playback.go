package handlers

import (
	"Playlister/services/rooms"
	socketio_types "Playlister/services/socket_io/types"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle a member registering its playback device. Host
// authority moves to the caller in the same registry transition that
// demotes the previous host, so the room never observes two hosts.
func HandleSetHostDevice(registry *rooms.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())

		var req SetHostDeviceRequest
		if err := decodePayload(args, &req); err != nil {
			log.Printf("[HOST-ERROR] Malformed set_host_device payload from %s: %v", connectionID, err)
			client.Emit("error", gin.H{"error": "Malformed set_host_device payload"})
			return
		}
		if req.RoomCode == "" || req.DeviceID == "" {
			client.Emit("error", gin.H{"error": "Room code and device id are required"})
			return
		}

		users, err := registry.SetHostDevice(req.RoomCode, connectionID, req.DeviceID)
		switch {
		case errors.Is(err, rooms.ErrNotInRoom):
			client.Emit("error", gin.H{"error": "You must join the room first"})
			return
		case err != nil:
			log.Printf("[HOST-ERROR] set_host_device on %s by %s: %v", req.RoomCode, connectionID, err)
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}

		log.Printf("[HOST-ASSIGNED] Connection %s is now host of %s (device %s)",
			connectionID, req.RoomCode, req.DeviceID)
		client.Emit("host_assigned", true)
		sio.Sio_server.To(socket.Room(rooms.Normalize(req.RoomCode))).Emit("users_update", users)
	}
}

// Function to relay the host's playback state to the rest of the room.
// The sender is excluded: it already holds the authoritative local state.
func HandleReportPlayback(registry *rooms.Registry, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())

		var req ReportPlaybackRequest
		if err := decodePayload(args, &req); err != nil {
			log.Printf("[PLAYBACK-ERROR] Malformed report_playback payload from %s: %v", connectionID, err)
			client.Emit("error", gin.H{"error": "Malformed report_playback payload"})
			return
		}
		if req.RoomCode == "" {
			client.Emit("error", gin.H{"error": "Room code is required"})
			return
		}

		if err := registry.SetPlayback(req.RoomCode, connectionID, req.PlaybackState); err != nil {
			log.Printf("[PLAYBACK-ERROR] report_playback on %s by %s: %v", req.RoomCode, connectionID, err)
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}

		client.To(socket.Room(rooms.Normalize(req.RoomCode))).Emit("playback_update", req.PlaybackState)
	}
}
