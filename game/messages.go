package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound messages are a closed set of tagged variants, validated here at
// the gateway boundary before anything reaches the engine.

const (
	msgCreateRoom     = "createRoom"
	msgJoinRoom       = "joinRoom"
	msgGuess          = "guess"
	msgEndGame        = "endGame"
	msgGetLeaderboard = "getLeaderboard"
)

type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type createRoomData struct {
	PlayerName string `json:"playerName"`
}

type joinRoomData struct {
	Code       string `json:"code"`
	PlayerName string `json:"playerName"`
}

type guessData struct {
	RoomCode string `json:"roomCode"`
	Country  string `json:"country"`
}

type roomCodeData struct {
	RoomCode string `json:"roomCode"`
}

// serverMessage is the outbound envelope.
type serverMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

var errBadMessage = errors.New("malformed message")

func parseClientMessage(raw []byte) (clientMessage, error) {
	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return clientMessage{}, errBadMessage
	}
	switch msg.Type {
	case msgCreateRoom, msgJoinRoom, msgGuess, msgEndGame, msgGetLeaderboard:
		return msg, nil
	}
	return clientMessage{}, fmt.Errorf("%w: unknown type %q", errBadMessage, msg.Type)
}

func decodeData[T any](msg clientMessage) (T, error) {
	var data T
	if len(msg.Data) == 0 {
		return data, fmt.Errorf("%w: missing data", errBadMessage)
	}
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return data, fmt.Errorf("%w: %s data", errBadMessage, msg.Type)
	}
	return data, nil
}

// isRoomCode checks the wire format of a room code: exactly 6 ASCII digits.
func isRoomCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
