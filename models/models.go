// models/models.go
package models

import (
	"time"
)

// LeaderboardEntry is one submitted solo result. The versus coordinator never
// writes these; they arrive through the HTTP API.
type LeaderboardEntry struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	TimeMs    int64     `json:"timeInMilliseconds"`
	GameMode  string    `json:"gameMode"`
	CreatedAt time.Time `json:"date"`
}

// ScoreSubmission is the inbound shape for POST /api/leaderboard/scores.
type ScoreSubmission struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	TimeMs   int64  `json:"timeInMilliseconds"`
}

const GameModeSingleplayer = "singleplayer"
