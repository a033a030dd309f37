// persistence/interface.go
package persistence

import (
	"errors"

	"github.com/stroopy/gameserver/models"
)

// LeaderboardStore is the durable side of the leaderboard API. Two
// implementations exist: a raw database/sql one and a GORM one.
type LeaderboardStore interface {
	SubmitScore(entry *models.LeaderboardEntry) error
	// TopScores returns the best completion times, fastest first.
	TopScores(limit int) ([]models.LeaderboardEntry, error)
	BestForUser(username string) (*models.LeaderboardEntry, error)
	Close() error
}

var ErrRecordNotFound = errors.New("record not found")
