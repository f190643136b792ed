package services

import (
	"errors"
	"time"

	"github.com/menulink/menulink-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UsageStatus is the quota snapshot returned to callers. Reset is the next
// UTC midnight, when a fresh counter row is implicitly created.
type UsageStatus struct {
	Count       int       `json:"count"`
	Limit       int       `json:"limit"`
	Remaining   int       `json:"remaining"`
	Reset       time.Time `json:"reset"`
	WithinLimit bool      `json:"within_limit"`
}

// UsageService meters the daily image-generation quota per user
type UsageService interface {
	// Status reports today's counter without incrementing it
	Status(userID uint) (UsageStatus, error)
	// Consume atomically increments today's counter if it is below the
	// ceiling. WithinLimit reports whether the increment was accepted; the
	// stored count never exceeds the ceiling under concurrent calls.
	Consume(userID uint) (UsageStatus, error)
}

type usageService struct {
	db    *gorm.DB
	limit int
}

func NewUsageService(db *gorm.DB, limit int) UsageService {
	return &usageService{db: db, limit: limit}
}

func (s *usageService) Status(userID uint) (UsageStatus, error) {
	now := time.Now().UTC()
	count, err := s.todayCount(userID, now)
	if err != nil {
		return UsageStatus{}, err
	}
	return s.status(count, count < s.limit, now), nil
}

func (s *usageService) Consume(userID uint) (UsageStatus, error) {
	now := time.Now().UTC()

	// A non-positive ceiling means the feature is disabled; report without
	// writing anything.
	if s.limit <= 0 {
		count, err := s.todayCount(userID, now)
		if err != nil {
			return UsageStatus{}, err
		}
		return s.status(count, false, now), nil
	}

	// Single conditional upsert so two concurrent requests cannot both pass
	// a read-side ceiling check and overshoot. RowsAffected == 0 means the
	// ceiling held and nothing changed.
	res := s.db.Exec(`
		INSERT INTO usage_counters (user_id, day, count, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE
		SET count = usage_counters.count + 1, updated_at = excluded.updated_at
		WHERE usage_counters.count < ?`,
		userID, dayKey(now), now, now, s.limit)
	if res.Error != nil {
		// Dialects without conditional-upsert support degrade to read-only
		// reporting rather than blocking the caller.
		log.WithError(res.Error).Warn("Atomic usage increment unavailable, falling back to read-only reporting")
		count, err := s.todayCount(userID, now)
		if err != nil {
			return UsageStatus{}, err
		}
		return s.status(count, count < s.limit, now), nil
	}

	count, err := s.todayCount(userID, now)
	if err != nil {
		return UsageStatus{}, err
	}
	return s.status(count, res.RowsAffected > 0, now), nil
}

func (s *usageService) todayCount(userID uint, now time.Time) (int, error) {
	var counter models.UsageCounter
	err := s.db.Where("user_id = ? AND day = ?", userID, dayKey(now)).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Count, nil
}

func (s *usageService) status(count int, withinLimit bool, now time.Time) UsageStatus {
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return UsageStatus{
		Count:       count,
		Limit:       s.limit,
		Remaining:   remaining,
		Reset:       nextUTCMidnight(now),
		WithinLimit: withinLimit,
	}
}

// dayKey formats the UTC calendar day used as the counter key.
func dayKey(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

func nextUTCMidnight(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
