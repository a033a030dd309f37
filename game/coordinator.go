package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stroopy/gameserver/network"
)

// Settings are the coordinator tuning knobs, filled from config in production.
type Settings struct {
	TerritorySize  int
	RoomCodeLength int
	FeedbackDelay  time.Duration
	NextRoundDelay time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		TerritorySize:  14,
		RoomCodeLength: 6,
		FeedbackDelay:  2 * time.Second,
		NextRoundDelay: time.Second,
	}
}

// Coordinator owns every room's lifecycle: pairing, readiness, round
// sequencing, answer arbitration, territory capture, win detection, rematch
// and teardown. All operations, inbound messages and scheduled continuations
// alike, run under one mutex, so transitions on a room never interleave.
type Coordinator struct {
	mu       sync.Mutex
	store    Store
	notifier Notifier
	sched    Scheduler
	gen      *Generator
	rng      *rand.Rand
	log      *zap.SugaredLogger
	stats    Stats
	settings Settings
}

func NewCoordinator(store Store, notifier Notifier, sched Scheduler, rng *rand.Rand, log *zap.SugaredLogger, settings Settings) *Coordinator {
	return &Coordinator{
		store:    store,
		notifier: notifier,
		sched:    sched,
		gen:      NewGenerator(rng, Palette),
		rng:      rng,
		log:      log,
		stats:    noopStats{},
		settings: settings,
	}
}

// SetStats wires the monitor in. Must be called before the server starts
// dispatching messages.
func (c *Coordinator) SetStats(stats Stats) {
	if stats != nil {
		c.stats = stats
	}
}

// CreateRoom allocates a fresh room with the caller as host and returns its
// code.
func (c *Coordinator) CreateRoom(connID, username string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := allocateCode(c.store, c.rng, c.settings.RoomCodeLength)
	room := NewRoom(code, connID, username, c.settings.TerritorySize)
	c.store.Put(room)
	c.stats.SetActiveRooms(c.store.Len())

	c.log.Infow("room created", "room", code, "host", username)
	c.send(connID, network.MsgTypeRoomCreated, RoomCreatedPayload{RoomCode: code})
	return code
}

// JoinRoom binds the caller as guest. Failures go to the caller only and never
// disturb an existing guest binding.
func (c *Coordinator) JoinRoom(connID, username, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		c.send(connID, network.MsgTypeJoinError, JoinErrorPayload{Message: "Room not found"})
		return ErrRoomNotFound
	}
	if room.GuestConn != "" {
		c.send(connID, network.MsgTypeJoinError, JoinErrorPayload{Message: "Room is full"})
		return ErrRoomFull
	}

	room.GuestConn = connID
	room.GuestName = username
	c.setPhase(room, PhaseReadyCheck)

	c.log.Infow("guest joined", "room", code, "guest", username)
	c.broadcast(room, network.MsgTypePlayerJoined, PlayerJoinedPayload{
		Host:     room.HostName,
		Guest:    username,
		RoomCode: code,
	})
	return nil
}

// Ready records a ready signal. The game starts exactly once, the moment the
// second distinct connection signals; re-signaling is a no-op.
func (c *Coordinator) Ready(connID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		return
	}
	if room.Phase != PhaseLobby && room.Phase != PhaseReadyCheck {
		return
	}
	// Only the two bound seats count toward the quorum; a stranger who
	// learned the code must not be able to start someone else's game.
	if _, member := room.RoleOf(connID); !member {
		c.log.Debugw("ready from non-member dropped", "room", code, "conn", connID)
		return
	}

	room.Ready[connID] = struct{}{}
	c.log.Debugw("player ready", "room", code, "ready", len(room.Ready))

	if len(room.Ready) >= 2 {
		room.ResetForGame(c.settings.TerritorySize)
		c.setPhase(room, PhaseInRound)
		c.log.Infow("game starting", "room", code)
		c.broadcast(room, network.MsgTypeGameStart, GameStartPayload{RoomCode: code})
	}
}

// JoinGame enters the game screen. The client opens a fresh socket per screen,
// so an unknown connection is rebound to the seat its role hint names. The
// first round starts once both seats have joined and no round is active.
func (c *Coordinator) JoinGame(connID, code string, asHost bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		c.log.Debugw("joinGame for unknown room", "room", code)
		return
	}

	room.Rebind(connID, asHost)
	room.GameJoined[connID] = struct{}{}

	_, hostIn := room.GameJoined[room.HostConn]
	_, guestIn := room.GameJoined[room.GuestConn]
	if room.InGame && room.Current == nil && room.HostConn != "" && room.GuestConn != "" && hostIn && guestIn {
		c.startRound(room)
	}
}

// Answer arbitrates a submission for the active round.
//
// Silently dropped: no active round, duplicate submission from the same
// connection, a round already resolved, or a claimed target color that
// disagrees with the authoritative round (stale or cheating client).
func (c *Coordinator) Answer(connID, code, answer, claimedTarget string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok || room.Current == nil || room.Phase != PhaseInRound {
		return
	}
	if _, answered := room.Current.Answers[connID]; answered {
		return
	}
	if !strings.EqualFold(claimedTarget, room.Current.Round.TargetColor) {
		c.log.Debugw("stale answer dropped", "room", code, "conn", connID,
			"claimed", claimedTarget, "actual", room.Current.Round.TargetColor)
		return
	}

	// Correctness is re-derived from the stored round, never trusted from the
	// client.
	correct := strings.EqualFold(answer, room.Current.Round.TargetColor)
	room.Current.Answers[connID] = Answer{Submitted: answer, Correct: correct, At: time.Now()}
	seq := room.Current.Seq

	if correct {
		role, known := room.RoleOf(connID)
		if !known {
			// A correct answer from a connection bound to neither seat; the
			// gateway should not let this happen.
			c.log.Warnw("answer from unbound connection", "room", code, "conn", connID)
			return
		}
		if idx, captured := room.Territory.Capture(role); captured {
			room.RoundCount++
			c.stats.IncCaptures()
			c.log.Infow("cell captured", "room", code, "by", role, "cell", idx, "round", room.RoundCount)
		}

		c.send(connID, network.MsgTypeRoundFeedback, RoundFeedbackPayload{
			Type:    FeedbackCorrect,
			Message: "Correct! You captured a cell!",
		})
		if opponent := room.OpponentConn(connID); opponent != "" {
			c.send(opponent, network.MsgTypeRoundFeedback, RoundFeedbackPayload{
				Type:    FeedbackTooSlow,
				Message: "Too slow! Opponent got it first.",
			})
		}

		c.setPhase(room, PhaseResolving)
		winner := connID
		c.sched.After(c.settings.FeedbackDelay, func() {
			c.resolveRound(code, seq, winner)
		})
		return
	}

	c.send(connID, network.MsgTypeRoundFeedback, RoundFeedbackPayload{
		Type:    FeedbackIncorrect,
		Message: "Incorrect! Wait for opponent...",
	})

	// If the opponent already answered it can only have been incorrectly: a
	// correct answer would have moved the room to Resolving and this
	// submission would have been dropped above.
	opponent := room.OpponentConn(connID)
	if _, opponentAnswered := room.Current.Answers[opponent]; opponentAnswered {
		c.setPhase(room, PhaseResolving)
		c.sched.After(c.settings.FeedbackDelay, func() {
			c.resolveRound(code, seq, "")
		})
	}
	// Otherwise the round stays open awaiting the opponent.
}

// resolveRound is the delayed continuation after feedback. The room may have
// been destroyed or moved on during the delay, so everything is re-fetched and
// re-validated before acting.
func (c *Coordinator) resolveRound(code string, seq uint64, winnerConn string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		return
	}
	if room.Phase != PhaseResolving || room.Current == nil || room.Current.Seq != seq {
		return
	}

	result := RoundResultPayload{
		TugOfWar:   room.Territory.Clone(),
		RoundCount: room.RoundCount,
	}
	if winnerConn != "" {
		winner := winnerConn
		result.Winner = &winner
	}
	c.broadcast(room, network.MsgTypeRoundResult, result)

	if winnerConn != "" {
		if role, known := room.RoleOf(winnerConn); known && room.Territory.Swept(role) {
			room.InGame = false
			room.Current = nil
			c.setPhase(room, PhaseGameOver)
			c.log.Infow("game over", "room", code, "winner", role, "rounds", room.RoundCount)
			c.broadcast(room, network.MsgTypeGameOver, GameOverPayload{
				WinnerID:      winnerConn,
				FinalTugOfWar: room.Territory.Clone(),
				RoundCount:    room.RoundCount,
			})
			return
		}
	}

	c.sched.After(c.settings.NextRoundDelay, func() {
		c.nextRound(code, seq)
	})
}

// nextRound starts the follow-up round unless the one it was scheduled for is
// no longer current.
func (c *Coordinator) nextRound(code string, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		return
	}
	if room.Phase != PhaseResolving || room.Current == nil || room.Current.Seq != seq {
		return
	}
	c.startRound(room)
}

// startRound replaces the active round wholesale and announces it. Caller
// holds the lock.
func (c *Coordinator) startRound(room *Room) {
	round, err := c.gen.Generate()
	if err != nil {
		c.log.Errorw("round generation failed", "room", room.Code, "err", err)
		return
	}
	room.Current = &ActiveRound{
		Round:   round,
		Answers: make(map[string]Answer),
		Seq:     room.NextSeq(),
	}
	c.setPhase(room, PhaseInRound)
	c.stats.IncRounds()

	c.broadcast(room, network.MsgTypeRoundStart, RoundStartPayload{
		TargetWord:   round.TargetWord,
		TargetColor:  round.TargetColor,
		ButtonStates: round.Cells,
		ColorHex:     ColorHex,
	})
}

// RequestRematch runs the two-step rematch handshake: the first caller
// proposes, the second accepts, and acceptance resets the room exactly like
// the initial ready quorum did.
func (c *Coordinator) RequestRematch(connID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		return
	}
	if room.Phase != PhaseGameOver && room.Phase != PhaseRematchPending {
		return
	}

	if !room.RematchRequested {
		room.RematchRequested = true
		room.Ready = map[string]struct{}{connID: {}}
		c.setPhase(room, PhaseRematchPending)
		c.log.Infow("rematch requested", "room", code)
		c.broadcast(room, network.MsgTypeRematchRequested, struct{}{})
		return
	}

	room.Ready[connID] = struct{}{}
	if len(room.Ready) >= 2 {
		room.ResetForGame(c.settings.TerritorySize)
		c.setPhase(room, PhaseInRound)
		c.log.Infow("rematch accepted", "room", code)
		c.broadcast(room, network.MsgTypeRematchAccepted, struct{}{})
	}
}

// LeaveGame applies the explicit-leave rules: a departing guest frees the seat
// and the host may await a new guest; a departing host ends the room.
func (c *Coordinator) LeaveGame(connID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		return
	}
	c.removePlayer(room, connID)
}

// Disconnect handles a bare transport close. Mid-game disconnects are
// tolerated: the room survives and the player can rebind via joinGame under
// the same role. Outside a game the explicit-leave rules apply.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Range(func(room *Room) bool {
		if _, member := room.RoleOf(connID); !member {
			return true
		}
		if room.InGame {
			c.log.Infow("mid-game disconnect tolerated", "room", room.Code, "conn", connID)
			return false
		}
		c.removePlayer(room, connID)
		return false
	})
}

// removePlayer does the shared teardown for LeaveGame and Disconnect. Caller
// holds the lock.
func (c *Coordinator) removePlayer(room *Room, connID string) {
	role, member := room.RoleOf(connID)
	if !member {
		return
	}

	if role == RoleHost {
		c.log.Infow("host left, destroying room", "room", room.Code)
		if room.GuestConn != "" {
			c.send(room.GuestConn, network.MsgTypePlayerDisconnected, struct{}{})
		}
		c.destroyRoom(room)
		return
	}

	// Guest departure: free the seat and fall back to the lobby so the host
	// can await a new guest.
	c.log.Infow("guest left", "room", room.Code)
	delete(room.Ready, room.GuestConn)
	delete(room.GameJoined, room.GuestConn)
	room.GuestConn = ""
	room.GuestName = ""
	room.Current = nil
	room.InGame = false
	room.RematchRequested = false
	c.setPhase(room, PhaseLobby)
	if room.HostConn != "" {
		c.send(room.HostConn, network.MsgTypePlayerLeft, struct{}{})
	}
}

// JoinGameOver registers a connection on the post-game screen, rebinding the
// fresh socket to its seat so the host-leaves-screen teardown can identify it.
func (c *Coordinator) JoinGameOver(connID, code string, asHost bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		return
	}
	room.Rebind(connID, asHost)
}

// LeaveGameOver tells the opponent the player left the post-game screen; the
// host leaving it is the terminal cleanup for the room.
func (c *Coordinator) LeaveGameOver(connID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.store.Get(code)
	if !ok {
		return
	}
	if opponent := room.OpponentConn(connID); opponent != "" {
		c.send(opponent, network.MsgTypeOpponentLeft, struct{}{})
	}
	if connID == room.HostConn {
		c.log.Infow("host left game over screen, destroying room", "room", code)
		c.destroyRoom(room)
	}
}

func (c *Coordinator) destroyRoom(room *Room) {
	c.store.Delete(room.Code)
	c.stats.SetActiveRooms(c.store.Len())
}

func (c *Coordinator) setPhase(room *Room, to Phase) {
	if !room.Phase.canTransition(to) {
		c.log.Errorw("illegal phase transition", "room", room.Code,
			"from", room.Phase, "to", to)
		return
	}
	room.Phase = to
}

// send delivers to one connection; delivery failures are not the room's
// problem (the target may have reconnected or gone away).
func (c *Coordinator) send(connID string, msgID uint16, payload interface{}) {
	if err := c.notifier.Notify(connID, msgID, payload); err != nil {
		c.log.Debugw("notify failed", "conn", connID, "msg", msgID, "err", err)
	}
}

// broadcast delivers to both seats of a room.
func (c *Coordinator) broadcast(room *Room, msgID uint16, payload interface{}) {
	if room.HostConn != "" {
		c.send(room.HostConn, msgID, payload)
	}
	if room.GuestConn != "" {
		c.send(room.GuestConn, msgID, payload)
	}
}
