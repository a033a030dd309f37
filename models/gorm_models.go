// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormLeaderboardEntry is the persisted form of LeaderboardEntry.
type GormLeaderboardEntry struct {
	gorm.Model
	Username string `gorm:"index;not null"`
	Score    int    `gorm:"not null"`
	TimeMs   int64  `gorm:"index;not null"`
	GameMode string `gorm:"index;not null;default:singleplayer"`
}

func (e *GormLeaderboardEntry) ToEntry() LeaderboardEntry {
	return LeaderboardEntry{
		ID:        e.ID,
		Username:  e.Username,
		Score:     e.Score,
		TimeMs:    e.TimeMs,
		GameMode:  e.GameMode,
		CreatedAt: e.CreatedAt,
	}
}
