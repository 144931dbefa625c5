package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, originAllowed func(origin string) bool) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"))
			},
		},
	}
}

// ConnectHandler upgrades the request and hands the socket to the hub. The
// connection id doubles as the player id for the lifetime of the socket.
func (h *Handler) ConnectHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	log.Debug().Str("conn", id).Str("ip", ctx.ClientIP()).Msg("client connected")
	h.hub.Serve(id, newWSConn(conn))
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/ws", h.ConnectHandler)
}
