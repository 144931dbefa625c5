package game

import (
	"slices"
	"sync"
	"time"

	"github.com/kaushika05/globlekay/country"
)

// Player is one room member. Mutated only by the Engine while holding the
// room lock.
type Player struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Score     int      `json:"score"`
	Guesses   []string `json:"guesses"`
	HasWon    bool     `json:"hasWon"`
	IsCreator bool     `json:"isCreator"`

	joinedSeq int
}

// HasGuessed reports whether this player already guessed the given country.
func (p *Player) HasGuessed(code string) bool {
	return slices.Contains(p.Guesses, code)
}

// Guess is an immutable event record; once appended to a room it is never
// mutated or removed.
type Guess struct {
	PlayerID      string  `json:"playerId"`
	PlayerName    string  `json:"playerName"`
	Country       string  `json:"country"`
	CountryName   string  `json:"countryName"`
	DistanceColor string  `json:"distanceColor"`
	Proximity     float64 `json:"proximity"`
	Timestamp     int64   `json:"timestamp"`
}

// Room is one game session. All mutation funnels through the Engine, which
// holds mu for the duration of a single logical operation.
type Room struct {
	mu sync.Mutex

	// Identity / fixed state
	code      string
	answer    country.Country
	createdAt time.Time

	// Runtime state
	players   map[string]*Player
	guesses   []Guess
	isOver    bool
	joinSeq   int
	reclaimed bool

	// Scheduled lifecycle work
	maxAgeTimer  Timer
	cleanupTimer Timer
}

func newRoom(code string, answer country.Country, now time.Time) *Room {
	return &Room{
		code:      code,
		answer:    answer,
		createdAt: now,
		players:   make(map[string]*Player),
	}
}

func (r *Room) addPlayer(id, name string, isCreator bool) *Player {
	p := &Player{
		ID:        id,
		Name:      name,
		Guesses:   []string{},
		IsCreator: isCreator,
		joinedSeq: r.joinSeq,
	}
	r.joinSeq++
	r.players[id] = p
	return p
}

// playerList returns the members ordered by join sequence.
func (r *Room) playerList() []Player {
	list := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		list = append(list, *p)
	}
	slices.SortFunc(list, func(a, b Player) int {
		return a.joinedSeq - b.joinedSeq
	})
	return list
}

// shouldEnd evaluates the game-over policy: every player has won, or at
// least one has and the grace window since creation has elapsed.
func (r *Room) shouldEnd(now time.Time, grace time.Duration) bool {
	if len(r.players) == 0 {
		return false
	}
	allWon := true
	anyWon := false
	for _, p := range r.players {
		if p.HasWon {
			anyWon = true
		} else {
			allWon = false
		}
	}
	return allWon || (anyWon && now.Sub(r.createdAt) > grace)
}

func (r *Room) stopTimers() {
	if r.maxAgeTimer != nil {
		r.maxAgeTimer.Stop()
	}
	if r.cleanupTimer != nil {
		r.cleanupTimer.Stop()
	}
}

// RoomSnapshot is the read-only view handed to a joining client.
type RoomSnapshot struct {
	Code       string   `json:"code"`
	Players    []Player `json:"players"`
	Guesses    []Guess  `json:"guesses"`
	IsGameOver bool     `json:"isGameOver"`
}

func (r *Room) snapshot() RoomSnapshot {
	guesses := make([]Guess, len(r.guesses))
	copy(guesses, r.guesses)
	return RoomSnapshot{
		Code:       r.code,
		Players:    r.playerList(),
		Guesses:    guesses,
		IsGameOver: r.isOver,
	}
}
