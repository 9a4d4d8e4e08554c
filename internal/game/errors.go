package game

import "errors"

// Sentinel errors returned by Session operations. The transport layer maps
// these onto HTTP status codes.
var (
	ErrSessionFull       = errors.New("session already has two players")
	ErrAlreadyJoined     = errors.New("player already joined this session")
	ErrUnknownPlayer     = errors.New("player not part of this session")
	ErrPlayerFinished    = errors.New("player already completed the game")
	ErrAttemptsExhausted = errors.New("maximum attempts reached")
)
