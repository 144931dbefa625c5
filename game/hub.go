package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	sendQueueSize = 64
	pingPeriod    = 30 * time.Second
)

// Hub is the connection gateway: it owns the live connections, turns
// inbound messages into engine calls and fans outbound events back out to
// the audience the engine named. It never touches room state itself.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client

	engine *Engine
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Bind wires the engine in after construction; Hub and Engine reference
// each other (engine broadcasts through the hub).
func (h *Hub) Bind(e *Engine) {
	h.engine = e
}

type client struct {
	id      string
	conn    netConn
	send    chan []byte
	limiter *rate.Limiter
	hub     *Hub
}

// Serve registers a connection and runs its pumps. Blocks until the
// connection dies; the caller owns the goroutine.
func (h *Hub) Serve(id string, conn netConn) {
	c := &client{
		id:      id,
		conn:    conn,
		send:    make(chan []byte, sendQueueSize),
		limiter: rate.NewLimiter(1, 5),
		hub:     h,
	}

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()

	go c.writePump()
	c.readPump()

	h.mu.Lock()
	delete(h.clients, id)
	close(c.send)
	h.mu.Unlock()

	h.engine.Disconnect(id)
	log.Debug().Str("conn", id).Msg("connection closed")
}

func (c *client) readPump() {
	for {
		raw, err := c.conn.Read()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			c.hub.sendError(c.id, "too many messages")
			continue
		}
		c.hub.dispatch(c, raw)
	}
}

func (c *client) writePump() {
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.Write(data); err != nil {
				return
			}
		case <-pings.C:
			if err := c.conn.Ping(); err != nil {
				return
			}
		}
	}
}

// dispatch validates one inbound message and invokes the matching engine
// operation. Rule violations go back to this requester only.
func (h *Hub) dispatch(c *client, raw []byte) {
	msg, err := parseClientMessage(raw)
	if err != nil {
		h.sendError(c.id, err.Error())
		return
	}

	switch msg.Type {
	case msgCreateRoom:
		data, err := decodeData[createRoomData](msg)
		if err != nil {
			h.sendError(c.id, err.Error())
			return
		}
		if data.PlayerName == "" {
			data.PlayerName = "Player"
		}
		if _, _, err := h.engine.CreateRoom(c.id, data.PlayerName); err != nil {
			log.Error().Err(err).Str("conn", c.id).Msg("create room failed")
			h.sendError(c.id, err.Error())
		}

	case msgJoinRoom:
		data, err := decodeData[joinRoomData](msg)
		if err != nil {
			h.sendError(c.id, err.Error())
			return
		}
		if !isRoomCode(data.Code) {
			h.sendError(c.id, ErrRoomNotFound.Error())
			return
		}
		if data.PlayerName == "" {
			data.PlayerName = "Player"
		}
		if _, err := h.engine.JoinRoom(data.Code, c.id, data.PlayerName); err != nil {
			h.sendError(c.id, err.Error())
		}

	case msgGuess:
		data, err := decodeData[guessData](msg)
		if err != nil {
			h.sendError(c.id, err.Error())
			return
		}
		if !isRoomCode(data.RoomCode) || data.Country == "" {
			h.sendError(c.id, errBadMessage.Error())
			return
		}
		if _, _, err := h.engine.SubmitGuess(data.RoomCode, c.id, data.Country); err != nil {
			h.sendError(c.id, err.Error())
		}

	case msgEndGame:
		data, err := decodeData[roomCodeData](msg)
		if err != nil {
			h.sendError(c.id, err.Error())
			return
		}
		if err := h.engine.EndGame(data.RoomCode, c.id); err != nil {
			h.sendError(c.id, err.Error())
		}

	case msgGetLeaderboard:
		data, err := decodeData[roomCodeData](msg)
		if err != nil {
			h.sendError(c.id, err.Error())
			return
		}
		standings, err := h.engine.Leaderboard(data.RoomCode)
		if err != nil {
			h.sendError(c.id, err.Error())
			return
		}
		h.sendTo(c.id, serverMessage{Type: EventLeaderboardUpdate, Data: standings})
	}
}

// Deliver implements Broadcaster. The engine names a room and an audience
// class; membership is resolved at delivery time.
func (h *Hub) Deliver(ev Event) {
	payload, err := json.Marshal(serverMessage{Type: ev.Type, Data: ev.Payload})
	if err != nil {
		log.Error().Err(err).Str("event", ev.Type).Msg("marshal outbound event")
		return
	}

	switch ev.Audience {
	case ToRequester:
		h.sendRaw(ev.PlayerID, payload)
	case ToRoom, ToOthers:
		for _, id := range h.engine.roomMemberIDs(ev.RoomCode) {
			if ev.Audience == ToOthers && id == ev.PlayerID {
				continue
			}
			h.sendRaw(id, payload)
		}
	}
}

func (h *Hub) sendTo(id string, msg serverMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("event", msg.Type).Msg("marshal outbound event")
		return
	}
	h.sendRaw(id, payload)
}

func (h *Hub) sendError(id, message string) {
	h.sendTo(id, serverMessage{Type: EventError, Data: ErrorPayload{Message: message}})
}

// sendRaw enqueues without blocking; a client that cannot keep up loses
// messages rather than stalling a room broadcast. The hub lock is held
// across the enqueue so the queue cannot be closed under us.
func (h *Hub) sendRaw(id string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
		log.Warn().Str("conn", id).Msg("send queue full, dropping message")
	}
}
