package game

import (
	"net/http"

	"github.com/DoriPlg/OneStroke/shared/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type GameHandler struct {
	coordinator *Coordinator
}

func NewGameHandler(coordinator *Coordinator) *GameHandler {
	return &GameHandler{coordinator: coordinator}
}

// PlayHandler upgrades the connection and hands the session to the
// coordinator. Identity is the per-connection session id; the client drives
// everything else over the socket.
func (h *GameHandler) PlayHandler(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "websocket-upgrade-failed"})
		return
	}

	player := h.coordinator.Register(NewWebsocketConnection(conn))
	logger.Infof("Session %s connected from %s", player.Id(), ctx.ClientIP())

	go player.ReadPump()
	go player.WritePump()
}

func RegisterRoute(engine *gin.Engine, h *GameHandler) {
	engine.GET("/play", h.PlayHandler)
}
