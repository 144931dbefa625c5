package game

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kaushika05/globlekay/country"
)

// DistanceFunc computes the proximity between a guessed country and the
// answer. Pure function, injected.
type DistanceFunc func(guess, answer country.Country) float64

// ColourFunc classifies a guess into a discrete colour hint. Pure function,
// injected.
type ColourFunc func(guess, answer country.Country) string

// Config holds the game-rule constants.
type Config struct {
	MaxPlayers   int
	GraceWindow  time.Duration
	CleanupDelay time.Duration
	MaxRoomAge   time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxPlayers:   10,
		GraceWindow:  5 * time.Minute,
		CleanupDelay: 30 * time.Second,
		MaxRoomAge:   2 * time.Hour,
	}
}

// Engine owns all game-rule logic. Every mutation of a Room goes through one
// of its entry points, which hold that room's lock for the duration of the
// operation and release it before any outbound event is delivered.
type Engine struct {
	store    *Store
	catalog  *country.Catalog
	distance DistanceFunc
	colour   ColourFunc
	clock    Clock
	bcast    Broadcaster
	cfg      Config
}

func NewEngine(store *Store, catalog *country.Catalog, distance DistanceFunc, colour ColourFunc, clock Clock, bcast Broadcaster, cfg Config) *Engine {
	return &Engine{
		store:    store,
		catalog:  catalog,
		distance: distance,
		colour:   colour,
		clock:    clock,
		bcast:    bcast,
		cfg:      cfg,
	}
}

// CreateRoom picks a random answer, creates the room and admits the creator
// as its first player. The room's absolute max-age expiry is armed here.
func (e *Engine) CreateRoom(creatorID, playerName string) (string, country.Country, error) {
	answer := e.catalog.Random()
	room, err := e.store.Create(answer, e.clock.Now())
	if err != nil {
		return "", country.Country{}, err
	}

	room.mu.Lock()
	room.addPlayer(creatorID, playerName, true)
	code := room.code
	room.maxAgeTimer = e.clock.AfterFunc(e.cfg.MaxRoomAge, func() {
		e.expireRoom(code)
	})
	room.mu.Unlock()

	log.Info().Str("room", code).Str("player", creatorID).Str("answer", answer.Code).Msg("room created")

	e.bcast.Deliver(Event{
		Type:     EventRoomCreated,
		Audience: ToRequester,
		RoomCode: code,
		PlayerID: creatorID,
		Payload:  RoomCreatedPayload{Code: code, AnswerCountry: CountryInfo{Code: answer.Code, Name: answer.Name}},
	})
	return code, answer, nil
}

// JoinRoom admits a player to an existing room. Joining an unknown code
// fails; re-joining with an id already in the room returns the current
// state without resetting anything.
func (e *Engine) JoinRoom(code, playerID, playerName string) (RoomSnapshot, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return RoomSnapshot{}, ErrRoomNotFound
	}

	room.mu.Lock()
	if room.reclaimed {
		room.mu.Unlock()
		return RoomSnapshot{}, ErrRoomNotFound
	}
	if _, rejoining := room.players[playerID]; rejoining {
		snap := room.snapshot()
		room.mu.Unlock()
		e.bcast.Deliver(Event{Type: EventRoomJoined, Audience: ToRequester, RoomCode: code, PlayerID: playerID, Payload: snap})
		return snap, nil
	}
	if len(room.players) >= e.cfg.MaxPlayers {
		room.mu.Unlock()
		return RoomSnapshot{}, ErrRoomFull
	}
	room.addPlayer(playerID, playerName, false)
	snap := room.snapshot()
	room.mu.Unlock()

	log.Debug().Str("room", code).Str("player", playerID).Msg("player joined")

	e.bcast.Deliver(Event{Type: EventRoomJoined, Audience: ToRequester, RoomCode: code, PlayerID: playerID, Payload: snap})
	e.bcast.Deliver(Event{
		Type:     EventPlayerJoined,
		Audience: ToOthers,
		RoomCode: code,
		PlayerID: playerID,
		Payload:  PlayerJoinedPayload{PlayerID: playerID, PlayerName: playerName, Players: snap.Players},
	})
	return snap, nil
}

// SubmitGuess runs the full guess pipeline and reports the recorded guess
// plus whether the room transitioned to game-over because of it. Each
// failure leaves the room untouched.
func (e *Engine) SubmitGuess(code, playerID, countryCode string) (Guess, bool, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return Guess{}, false, ErrRoomNotFound
	}

	room.mu.Lock()
	if room.reclaimed {
		room.mu.Unlock()
		return Guess{}, false, ErrRoomNotFound
	}
	if room.isOver {
		room.mu.Unlock()
		return Guess{}, false, ErrGameAlreadyOver
	}
	player, ok := room.players[playerID]
	if !ok {
		room.mu.Unlock()
		return Guess{}, false, ErrUnknownPlayer
	}
	guessed, ok := e.catalog.ByCode(countryCode)
	if !ok {
		room.mu.Unlock()
		return Guess{}, false, ErrInvalidCountry
	}
	if player.HasGuessed(countryCode) {
		room.mu.Unlock()
		return Guess{}, false, ErrDuplicateGuess
	}

	now := e.clock.Now()
	guess := Guess{
		PlayerID:      playerID,
		PlayerName:    player.Name,
		Country:       guessed.Code,
		CountryName:   guessed.Name,
		DistanceColor: e.colour(guessed, room.answer),
		Proximity:     e.distance(guessed, room.answer),
		Timestamp:     now.UnixMilli(),
	}

	room.guesses = append(room.guesses, guess)
	player.Score++
	player.Guesses = append(player.Guesses, guessed.Code)
	if guessed.Code == room.answer.Code {
		player.HasWon = true
	}

	events := []Event{
		{Type: EventNewGuess, Audience: ToRoom, RoomCode: code, PlayerID: playerID, Payload: guess},
		{Type: EventLeaderboardUpdate, Audience: ToRoom, RoomCode: code, Payload: computeLeaderboard(room.playerList())},
	}

	over := false
	if room.shouldEnd(now, e.cfg.GraceWindow) {
		over = true
		winner := ""
		if player.HasWon && guessed.Code == room.answer.Code {
			winner = player.Name
		}
		events = append(events, e.finishLocked(room, winner, false))
	}
	room.mu.Unlock()

	for _, ev := range events {
		e.bcast.Deliver(ev)
	}
	return guess, over, nil
}

// EndGame forces the room into game-over. Only the creator may do this;
// re-ending an already over room is a no-op.
func (e *Engine) EndGame(code, requesterID string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	if room.reclaimed {
		room.mu.Unlock()
		return ErrRoomNotFound
	}
	player, ok := room.players[requesterID]
	if !ok || !player.IsCreator {
		room.mu.Unlock()
		return ErrNotCreator
	}
	if room.isOver {
		room.mu.Unlock()
		return nil
	}
	ev := e.finishLocked(room, "", true)
	room.mu.Unlock()

	log.Info().Str("room", code).Str("player", requesterID).Msg("game ended by creator")
	e.bcast.Deliver(ev)
	return nil
}

// finishLocked transitions the room to game-over and schedules its reclaim.
// Callers hold the room lock and must have checked isOver, which keeps the
// transition single-shot.
func (e *Engine) finishLocked(room *Room, winner string, byCreator bool) Event {
	room.isOver = true
	code := room.code
	room.cleanupTimer = e.clock.AfterFunc(e.cfg.CleanupDelay, func() {
		e.reclaimRoom(code)
	})
	return Event{
		Type:     EventGameOver,
		Audience: ToRoom,
		RoomCode: code,
		Payload: GameOverPayload{
			Leaderboard:    computeLeaderboard(room.playerList()),
			AnswerCountry:  CountryInfo{Code: room.answer.Code, Name: room.answer.Name},
			Winner:         winner,
			EndedByCreator: byCreator,
		},
	}
}

// RemovePlayer drops a player from a room. The last player leaving deletes
// the room immediately, cancelling any pending timers. Removing from a
// missing room or an unknown player is a no-op.
func (e *Engine) RemovePlayer(code, playerID string) {
	room, ok := e.store.Get(code)
	if !ok {
		return
	}

	room.mu.Lock()
	if room.reclaimed {
		room.mu.Unlock()
		return
	}
	if _, member := room.players[playerID]; !member {
		room.mu.Unlock()
		return
	}
	delete(room.players, playerID)

	if len(room.players) == 0 {
		room.reclaimed = true
		room.stopTimers()
		room.mu.Unlock()
		e.store.Delete(code)
		log.Info().Str("room", code).Msg("room deleted, last player left")
		return
	}

	players := room.playerList()
	room.mu.Unlock()

	e.bcast.Deliver(Event{
		Type:     EventPlayerLeft,
		Audience: ToRoom,
		RoomCode: code,
		PlayerID: playerID,
		Payload:  PlayerLeftPayload{PlayerID: playerID, Players: players},
	})
}

// Disconnect removes the player from every room they are part of. Rooms
// already gone are skipped silently.
func (e *Engine) Disconnect(playerID string) {
	for _, code := range e.store.Codes() {
		e.RemovePlayer(code, playerID)
	}
}

// Leaderboard returns the current standings of a room.
func (e *Engine) Leaderboard(code string) ([]Standing, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.mu.Lock()
	if room.reclaimed {
		room.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	standings := computeLeaderboard(room.playerList())
	room.mu.Unlock()
	return standings, nil
}

// roomMemberIDs resolves the current member ids of a room for audience
// fan-out. A missing room yields nil.
func (e *Engine) roomMemberIDs(code string) []string {
	room, ok := e.store.Get(code)
	if !ok {
		return nil
	}
	room.mu.Lock()
	ids := make([]string, 0, len(room.players))
	for id := range room.players {
		ids = append(ids, id)
	}
	room.mu.Unlock()
	return ids
}

// reclaimRoom is the deferred post-game cleanup. A room deleted earlier for
// another reason makes this a no-op.
func (e *Engine) reclaimRoom(code string) {
	room, ok := e.store.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	if room.reclaimed {
		room.mu.Unlock()
		return
	}
	room.reclaimed = true
	room.stopTimers()
	room.mu.Unlock()
	e.store.Delete(code)
	log.Info().Str("room", code).Msg("room reclaimed after game over")
}

// expireRoom enforces the absolute room age cap.
func (e *Engine) expireRoom(code string) {
	room, ok := e.store.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	if room.reclaimed {
		room.mu.Unlock()
		return
	}
	room.reclaimed = true
	room.stopTimers()
	room.mu.Unlock()
	e.store.Delete(code)
	log.Info().Str("room", code).Msg("room expired, max age reached")
}
