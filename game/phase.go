package game

// Phase is the tagged state of a room. Transitions outside the table below are
// coordinator bugs and are rejected.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseReadyCheck
	PhaseInRound
	PhaseResolving
	PhaseGameOver
	PhaseRematchPending
)

var phaseNames = map[Phase]string{
	PhaseLobby:          "lobby",
	PhaseReadyCheck:     "ready_check",
	PhaseInRound:        "in_round",
	PhaseResolving:      "resolving",
	PhaseGameOver:       "game_over",
	PhaseRematchPending: "rematch_pending",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// legalTransitions mirrors the match flow: lobby -> ready check -> rounds
// alternating with resolution until a sweep, then game over and an optional
// rematch loop. Any phase may fall back to lobby when the guest leaves.
var legalTransitions = map[Phase][]Phase{
	PhaseLobby:          {PhaseReadyCheck},
	PhaseReadyCheck:     {PhaseInRound, PhaseLobby},
	PhaseInRound:        {PhaseResolving, PhaseLobby},
	PhaseResolving:      {PhaseInRound, PhaseGameOver, PhaseLobby},
	PhaseGameOver:       {PhaseRematchPending, PhaseLobby},
	PhaseRematchPending: {PhaseInRound, PhaseLobby},
}

func (p Phase) canTransition(to Phase) bool {
	if p == to {
		return true
	}
	for _, next := range legalTransitions[p] {
		if next == to {
			return true
		}
	}
	return false
}
