// services/leaderboard_service.go
package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/stroopy/gameserver/models"
	"github.com/stroopy/gameserver/persistence"
)

// MaxTopScores caps how many entries a top-N query may request.
const MaxTopScores = 100

// LeaderboardService fronts the store with validation and a read-through
// cache for the hot top-N query. The cache is in-process with a short TTL;
// submissions invalidate it.
type LeaderboardService struct {
	store persistence.LeaderboardStore

	cacheMutex sync.Mutex
	cache      map[int]cachedScores
	cacheTTL   time.Duration
}

type cachedScores struct {
	entries []models.LeaderboardEntry
	expires time.Time
}

func NewLeaderboardService(store persistence.LeaderboardStore) *LeaderboardService {
	return &LeaderboardService{
		store:    store,
		cache:    make(map[int]cachedScores),
		cacheTTL: 30 * time.Second,
	}
}

func (s *LeaderboardService) SubmitScore(sub models.ScoreSubmission) (*models.LeaderboardEntry, error) {
	if sub.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if sub.Score < 0 {
		return nil, fmt.Errorf("invalid score")
	}
	if sub.TimeMs <= 0 {
		return nil, fmt.Errorf("invalid time")
	}

	entry := &models.LeaderboardEntry{
		Username: sub.Username,
		Score:    sub.Score,
		TimeMs:   sub.TimeMs,
		GameMode: models.GameModeSingleplayer,
	}
	if err := s.store.SubmitScore(entry); err != nil {
		return nil, err
	}

	s.cacheMutex.Lock()
	s.cache = make(map[int]cachedScores)
	s.cacheMutex.Unlock()

	return entry, nil
}

func (s *LeaderboardService) TopScores(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > MaxTopScores {
		limit = MaxTopScores
	}

	s.cacheMutex.Lock()
	cached, ok := s.cache[limit]
	s.cacheMutex.Unlock()
	if ok && time.Now().Before(cached.expires) {
		return cached.entries, nil
	}

	entries, err := s.store.TopScores(limit)
	if err != nil {
		return nil, err
	}

	s.cacheMutex.Lock()
	s.cache[limit] = cachedScores{entries: entries, expires: time.Now().Add(s.cacheTTL)}
	s.cacheMutex.Unlock()

	return entries, nil
}

func (s *LeaderboardService) BestForUser(username string) (*models.LeaderboardEntry, error) {
	return s.store.BestForUser(username)
}
