// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/stroopy/gameserver/models"
)

// PostgreSQL is the raw database/sql implementation of LeaderboardStore.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS leaderboard_entries (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            score INTEGER NOT NULL,
            time_ms BIGINT NOT NULL,
            game_mode TEXT NOT NULL DEFAULT 'singleplayer',
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_leaderboard_time
        ON leaderboard_entries (game_mode, time_ms)`)
	return err
}

func (p *PostgreSQL) SubmitScore(entry *models.LeaderboardEntry) error {
	return p.db.QueryRow(`
        INSERT INTO leaderboard_entries (username, score, time_ms, game_mode)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`,
		entry.Username, entry.Score, entry.TimeMs, entry.GameMode,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (p *PostgreSQL) TopScores(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := p.db.Query(`
        SELECT id, username, score, time_ms, game_mode, created_at
        FROM leaderboard_entries
        WHERE game_mode = $1
        ORDER BY time_ms ASC
        LIMIT $2`,
		models.GameModeSingleplayer, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Score, &e.TimeMs, &e.GameMode, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *PostgreSQL) BestForUser(username string) (*models.LeaderboardEntry, error) {
	var e models.LeaderboardEntry
	err := p.db.QueryRow(`
        SELECT id, username, score, time_ms, game_mode, created_at
        FROM leaderboard_entries
        WHERE username = $1
        ORDER BY time_ms ASC
        LIMIT 1`,
		username,
	).Scan(&e.ID, &e.Username, &e.Score, &e.TimeMs, &e.GameMode, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
