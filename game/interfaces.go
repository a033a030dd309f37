package game

import "time"

// Notifier delivers one outbound event to one connection. Declared here so the
// coordinator does not depend on the transport packages; the broadcast package
// provides the session-backed implementation.
type Notifier interface {
	Notify(connID string, msgID uint16, payload interface{}) error
}

// Scheduler arms delayed continuations (feedback -> result -> next round).
// Callbacks may fire after arbitrary later events, so every callback
// re-validates room and round state before touching anything.
type Scheduler interface {
	After(delay time.Duration, fn func()) int64
}

// Stats is the slice of the monitor the coordinator feeds.
type Stats interface {
	SetActiveRooms(n int)
	IncRounds()
	IncCaptures()
}

// noopStats keeps the coordinator metric-free in tests.
type noopStats struct{}

func (noopStats) SetActiveRooms(int) {}
func (noopStats) IncRounds()         {}
func (noopStats) IncCaptures()       {}
