package game

import "time"

// Answer records one connection's submission for the active round.
type Answer struct {
	Submitted string
	Correct   bool
	At        time.Time
}

// ActiveRound is the round currently accepting answers. It is replaced
// wholesale on every round start; Seq ties scheduled continuations to the
// round they were armed for.
type ActiveRound struct {
	Round   *Round
	Answers map[string]Answer // connection id -> answer
	Seq     uint64
}

// Room is one match's complete state. All mutation happens under the
// coordinator's lock; the struct itself carries no synchronization.
type Room struct {
	Code  string
	Phase Phase

	HostConn  string
	GuestConn string
	HostName  string
	GuestName string

	Ready      map[string]struct{} // ready signals for the current game
	GameJoined map[string]struct{} // connections that entered the game screen

	Territory  Territory
	RoundCount int
	Current    *ActiveRound
	roundSeq   uint64

	InGame           bool
	RematchRequested bool

	CreatedAt time.Time
}

func NewRoom(code string, hostConn, hostName string, territorySize int) *Room {
	return &Room{
		Code:       code,
		Phase:      PhaseLobby,
		HostConn:   hostConn,
		HostName:   hostName,
		Ready:      make(map[string]struct{}),
		GameJoined: make(map[string]struct{}),
		Territory:  NewTerritory(territorySize),
		CreatedAt:  time.Now(),
	}
}

// RoleOf resolves a connection id to its seat.
func (r *Room) RoleOf(connID string) (Role, bool) {
	switch connID {
	case "":
		return "", false
	case r.HostConn:
		return RoleHost, true
	case r.GuestConn:
		return RoleGuest, true
	}
	return "", false
}

// ConnOf returns the connection currently bound to a seat ("" when vacant).
func (r *Room) ConnOf(role Role) string {
	if role == RoleHost {
		return r.HostConn
	}
	return r.GuestConn
}

// OpponentConn returns the other seat's connection id, or "" when the caller
// is unknown or the other seat is vacant.
func (r *Room) OpponentConn(connID string) string {
	role, ok := r.RoleOf(connID)
	if !ok {
		return ""
	}
	return r.ConnOf(role.Opponent())
}

// Rebind points a seat at a fresh connection id. The client opens a new socket
// per screen, so reconnection is just the same seat under a new id; a
// connection already bound to either seat is left alone.
func (r *Room) Rebind(connID string, asHost bool) {
	if connID == r.HostConn || connID == r.GuestConn {
		return
	}
	if asHost {
		r.HostConn = connID
	} else {
		r.GuestConn = connID
	}
}

// ResetForGame puts the room into a fresh-match state, used both at the
// initial ready quorum and on rematch acceptance.
func (r *Room) ResetForGame(territorySize int) {
	r.Territory = NewTerritory(territorySize)
	r.RoundCount = 0
	r.Current = nil
	r.GameJoined = make(map[string]struct{})
	r.RematchRequested = false
	r.InGame = true
}

// NextSeq advances and returns the round sequence number.
func (r *Room) NextSeq() uint64 {
	r.roundSeq++
	return r.roundSeq
}
