package game

// Outbound payloads. Field names follow the wire vocabulary the clients bind
// to; message ids live in the network package.

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type PlayerJoinedPayload struct {
	Host     string `json:"host"`
	Guest    string `json:"guest"`
	RoomCode string `json:"roomCode"`
}

type GameStartPayload struct {
	RoomCode string `json:"roomCode"`
}

type RoundStartPayload struct {
	TargetWord   string            `json:"targetWord"`
	TargetColor  string            `json:"targetColor"`
	ButtonStates [GridSize]*Cell   `json:"buttonStates"`
	ColorHex     map[string]string `json:"colors"`
}

// Feedback types for RoundFeedbackPayload.Type.
const (
	FeedbackCorrect   = "correct"
	FeedbackIncorrect = "incorrect"
	FeedbackTooSlow   = "too_slow"
)

type RoundFeedbackPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type RoundResultPayload struct {
	Winner     *string   `json:"winner"` // connection id, nil when nobody scored
	TugOfWar   Territory `json:"tugOfWar"`
	RoundCount int       `json:"roundCount"`
}

type GameOverPayload struct {
	WinnerID      string    `json:"winnerId"`
	FinalTugOfWar Territory `json:"finalTugOfWar"`
	RoundCount    int       `json:"roundCount"`
}
