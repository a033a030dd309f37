package game

import "errors"

// ErrRoomNotFound and ErrRoomFull surface to the caller as joinError events;
// everything else stays server-side.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)
