package game

// Audience names the set of connections an outbound event is addressed to.
// The engine never talks to a transport connection directly; the gateway
// resolves the audience to sockets.
type Audience int

const (
	// ToRequester delivers to the originating connection only.
	ToRequester Audience = iota
	// ToRoom delivers to every member of the room.
	ToRoom
	// ToOthers delivers to every room member except the originating one.
	ToOthers
)

// Event is one outbound notification. Events are collected while a room
// operation runs and delivered only after the room lock is released.
type Event struct {
	Type     string
	Audience Audience
	RoomCode string
	PlayerID string
	Payload  any
}

// Broadcaster delivers outbound events to their audience.
type Broadcaster interface {
	Deliver(Event)
}

const (
	EventRoomCreated       = "roomCreated"
	EventRoomJoined        = "roomJoined"
	EventPlayerJoined      = "playerJoined"
	EventPlayerLeft        = "playerLeft"
	EventNewGuess          = "newGuess"
	EventLeaderboardUpdate = "leaderboardUpdate"
	EventGameOver          = "gameOver"
	EventError             = "error"
)

// CountryInfo is the wire form of a country reference; clients hold the
// geometry themselves.
type CountryInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type RoomCreatedPayload struct {
	Code          string      `json:"code"`
	AnswerCountry CountryInfo `json:"answerCountry"`
}

type PlayerJoinedPayload struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Players    []Player `json:"players"`
}

type PlayerLeftPayload struct {
	PlayerID string   `json:"playerId"`
	Players  []Player `json:"players"`
}

type GameOverPayload struct {
	Leaderboard    []Standing  `json:"leaderboard"`
	AnswerCountry  CountryInfo `json:"answerCountry"`
	Winner         string      `json:"winner,omitempty"`
	EndedByCreator bool        `json:"endedByCreator,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
