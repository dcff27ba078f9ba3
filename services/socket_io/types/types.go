package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of
// socket connections. It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track connection id -> socket connections. Guests are
	// anonymous, so the socket id is the only identity we have.
	Connections map[string]*socket.Socket
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(connectionID string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[connectionID] = socket
}

func (s *SocketServer) RemoveConnection(connectionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, connectionID)
}

func (s *SocketServer) GetConnection(connectionID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.Connections[connectionID]
	return socket, exists
}

func (s *SocketServer) ConnectionCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.Connections)
}
