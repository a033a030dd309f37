// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stroopy/gameserver/models"
)

// GormPostgreSQL is the GORM implementation of LeaderboardStore.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormLeaderboardEntry{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (p *GormPostgreSQL) SubmitScore(entry *models.LeaderboardEntry) error {
	record := models.GormLeaderboardEntry{
		Username: entry.Username,
		Score:    entry.Score,
		TimeMs:   entry.TimeMs,
		GameMode: entry.GameMode,
	}
	if err := p.db.Create(&record).Error; err != nil {
		return err
	}
	entry.ID = record.ID
	entry.CreatedAt = record.CreatedAt
	return nil
}

func (p *GormPostgreSQL) TopScores(limit int) ([]models.LeaderboardEntry, error) {
	var records []models.GormLeaderboardEntry
	err := p.db.
		Where("game_mode = ?", models.GameModeSingleplayer).
		Order("time_ms ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].ToEntry())
	}
	return entries, nil
}

func (p *GormPostgreSQL) BestForUser(username string) (*models.LeaderboardEntry, error) {
	var record models.GormLeaderboardEntry
	err := p.db.
		Where("username = ?", username).
		Order("time_ms ASC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	entry := record.ToEntry()
	return &entry, nil
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
