package socket_io

import (
	"Playlister/services/rooms"
	"Playlister/services/socket_io/handlers"

	socketio_types "Playlister/services/socket_io/types"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, registry *rooms.Registry) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and
	// 2) support slower networks. The ping timeout is also what turns a
	// dead transport (tab killed, network drop) into a disconnecting
	// event, which drives room cleanup for members that never said goodbye.
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the map, it panics otherwise
	sio.Connections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		connectionID := string(client.Id())

		// Guests are anonymous: the socket id is the connection identity.
		(*socketio_types.SocketServer)(sio).AddConnection(connectionID, client)
		log.Printf("[CONNECT] New connection: %s (%d live)",
			connectionID, (*socketio_types.SocketServer)(sio).ConnectionCount())

		// Create a brand-new room with the caller as host
		client.On("create_room", handlers.HandleCreateRoom(registry, client))

		// Join an existing room (or create it, guest-first-join)
		client.On("join_room", handlers.HandleJoinRoom(registry, client, (*socketio_types.SocketServer)(sio)))

		// Append a track to the shared queue (any member)
		client.On("add_to_queue", handlers.HandleAddToQueue(registry, client, (*socketio_types.SocketServer)(sio)))

		// Remove a track by index (host only)
		client.On("remove_from_queue", handlers.HandleRemoveFromQueue(registry, client, (*socketio_types.SocketServer)(sio)))

		// Claim host authority and register the playback device
		client.On("set_host_device", handlers.HandleSetHostDevice(registry, client, (*socketio_types.SocketServer)(sio)))

		// Relay the host's playback snapshot to everyone else
		client.On("report_playback", handlers.HandleReportPlayback(registry, client))

		// NOTE: will remove the member from its rooms and the sio map
		client.On("disconnecting", handlers.HandleDisconnecting(registry, client, (*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	log.Println("Socket server started")
}
