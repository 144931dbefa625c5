package game

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room full")
	ErrUnknownPlayer      = errors.New("player is not in the room")
	ErrInvalidCountry     = errors.New("unknown country")
	ErrDuplicateGuess     = errors.New("country already guessed")
	ErrGameAlreadyOver    = errors.New("game is over")
	ErrNotCreator         = errors.New("only the room creator can end the game")
	ErrCodeSpaceExhausted = errors.New("room code space exhausted")
)
