package handlers

import (
	"Playlister/services/rooms"
	socketio_types "Playlister/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle the creation of a brand-new room. The caller becomes
// the room's first member and its host, and is joined to the socket.io
// room for the fresh code. No broadcast is needed: the caller is the only
// member.
func HandleCreateRoom(registry *rooms.Registry, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())

		var req CreateRoomRequest
		if len(args) > 0 {
			if err := decodePayload(args, &req); err != nil {
				log.Printf("[CREATE-ERROR] Malformed payload from %s: %v", connectionID, err)
				client.Emit("error", gin.H{"error": "Malformed create_room payload"})
				return
			}
		}

		snap, err := registry.CreateRoom(connectionID, req.DisplayName)
		if err != nil {
			log.Printf("[CREATE-ERROR] Could not create room for %s: %v", connectionID, err)
			client.Emit("error", gin.H{"error": "Could not create room"})
			return
		}

		client.Join(socket.Room(snap.Code))
		log.Printf("[CREATE-SUCCESS] Connection %s created room %s", connectionID, snap.Code)

		client.Emit("joined_room", gin.H{
			"status":   "ok",
			"roomCode": snap.Code,
			"role":     "host",
		})
		client.Emit("users_update", snap.Users)
		client.Emit("queue_update", snap.Queue)
	}
}

// Function to handle the act of joining a room. Joining an unknown code
// creates the room on the fly (the guest-first-join case). The caller gets
// the full room snapshot; everyone in the room gets the updated member
// list.
func HandleJoinRoom(registry *rooms.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())
		log.Printf("[JOIN] HandleJoinRoom - Connection: %s, Args: %v", connectionID, args)

		var req JoinRoomRequest
		// Older clients emit join_room with a bare room-code string.
		if len(args) > 0 {
			if code, ok := args[0].(string); ok {
				req.RoomCode = code
			} else if err := decodePayload(args, &req); err != nil {
				log.Printf("[JOIN-ERROR] Malformed payload from %s: %v", connectionID, err)
				client.Emit("error", gin.H{"error": "Malformed join_room payload"})
				return
			}
		}
		if req.RoomCode == "" {
			log.Printf("[JOIN-ERROR] Missing room code from %s", connectionID)
			client.Emit("error", gin.H{"error": "Room code is required"})
			return
		}

		snap, isHost, err := registry.JoinRoom(req.RoomCode, connectionID, req.UserName)
		if err != nil {
			log.Printf("[JOIN-ERROR] Connection %s could not join %s: %v", connectionID, req.RoomCode, err)
			client.Emit("error", gin.H{"error": "Could not join room"})
			return
		}

		client.Join(socket.Room(snap.Code))
		log.Printf("[JOIN-SUCCESS] Connection %s joined room %s (host=%v)", connectionID, snap.Code, isHost)

		role := "guest"
		if isHost {
			role = "host"
		}
		client.Emit("joined_room", gin.H{
			"status":   "ok",
			"roomCode": snap.Code,
			"role":     role,
		})
		client.Emit("queue_update", snap.Queue)

		// Late joiners should see what is already playing.
		if state, found := registry.Playback(snap.Code); found {
			client.Emit("playback_update", state)
		}

		sio.Sio_server.To(socket.Room(snap.Code)).Emit("users_update", snap.Users)
	}
}
