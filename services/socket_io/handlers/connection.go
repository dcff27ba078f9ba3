package handlers

import (
	"Playlister/services/rooms"
	socketio_types "Playlister/services/socket_io/types"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle socket.io client disconnections. The connection is
// removed from every room it belonged to; rooms it hosted promote their
// earliest-joined remaining member, and rooms left empty are deleted with
// no broadcast (nobody is left to hear it).
func HandleDisconnecting(registry *rooms.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())
		log.Printf("[DISCONNECT] HandleDisconnecting - Connection: %s", connectionID)

		departures := registry.Disconnect(connectionID)
		for _, dep := range departures {
			if dep.RoomClosed {
				log.Printf("[DISCONNECT] Room %s closed (last member left)", dep.Code)
				continue
			}
			if dep.NewHostID != "" {
				log.Printf("[DISCONNECT] Host of %s left, promoted %s", dep.Code, dep.NewHostID)
			}
			client.Leave(socket.Room(dep.Code))
			sio.Sio_server.To(socket.Room(dep.Code)).Emit("users_update", dep.Users)
		}

		// Finally remove connection from map
		sio.RemoveConnection(connectionID)
		log.Printf("[DISCONNECT-DONE] Connection gone: %s", connectionID)
	}
}
