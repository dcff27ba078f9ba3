package handlers

import (
	"Playlister/services/rooms"
	socketio_types "Playlister/services/socket_io/types"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle adding a track to a room's queue. Any member may add;
// the registry stamps the entry with an id, the server time and the
// submitter's display name, and the full queue is broadcast to the room.
func HandleAddToQueue(registry *rooms.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())

		var req AddToQueueRequest
		if err := decodePayload(args, &req); err != nil {
			log.Printf("[QUEUE-ERROR] Malformed add_to_queue payload from %s: %v", connectionID, err)
			client.Emit("error", gin.H{"error": "Malformed add_to_queue payload"})
			return
		}
		if req.RoomCode == "" {
			log.Printf("[QUEUE-ERROR] Missing room code from %s", connectionID)
			client.Emit("error", gin.H{"error": "Room code is required"})
			return
		}
		if req.Track.Name == "" && req.Track.URI == "" {
			client.Emit("error", gin.H{"error": "Track is required"})
			return
		}

		queue, err := registry.AddTrack(req.RoomCode, connectionID, req.Track.toQueuedTrack())
		if err != nil {
			log.Printf("[QUEUE-ERROR] add_to_queue on %s by %s: %v", req.RoomCode, connectionID, err)
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}

		log.Printf("[QUEUE] %s added %q to room %s (%d queued)",
			connectionID, req.Track.Name, req.RoomCode, len(queue))
		sio.Sio_server.To(socket.Room(rooms.Normalize(req.RoomCode))).Emit("queue_update", queue)
	}
}

// Function to handle removing a track by queue index. Host only: guests
// get an explicit error event instead of a silent no-op, as does any stale
// index.
func HandleRemoveFromQueue(registry *rooms.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())

		var req RemoveFromQueueRequest
		if err := decodePayload(args, &req); err != nil {
			log.Printf("[QUEUE-ERROR] Malformed remove_from_queue payload from %s: %v", connectionID, err)
			client.Emit("error", gin.H{"error": "Malformed remove_from_queue payload"})
			return
		}
		if req.RoomCode == "" || req.Index == nil {
			client.Emit("error", gin.H{"error": "Room code and index are required"})
			return
		}

		queue, err := registry.RemoveTrack(req.RoomCode, connectionID, *req.Index)
		switch {
		case errors.Is(err, rooms.ErrNotHost):
			log.Printf("[QUEUE-DENIED] %s is not host of %s", connectionID, req.RoomCode)
			client.Emit("error", gin.H{"error": "Only the host can remove tracks"})
			return
		case errors.Is(err, rooms.ErrIndexOutOfRange):
			client.Emit("error", gin.H{"error": "Queue index out of range"})
			return
		case err != nil:
			log.Printf("[QUEUE-ERROR] remove_from_queue on %s by %s: %v", req.RoomCode, connectionID, err)
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}

		log.Printf("[QUEUE] %s removed index %d from room %s (%d queued)",
			connectionID, *req.Index, req.RoomCode, len(queue))
		sio.Sio_server.To(socket.Room(rooms.Normalize(req.RoomCode))).Emit("queue_update", queue)
	}
}
