package services

import (
	"sync"
	"testing"
	"time"

	"github.com/menulink/menulink-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusDoesNotIncrement(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewUsageService(db, 5)

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Count)
	assert.Equal(t, 5, status.Limit)
	assert.Equal(t, 5, status.Remaining)
	assert.True(t, status.WithinLimit)

	status, err = svc.Status(1)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Count)

	var count int64
	require.NoError(t, db.Model(&models.UsageCounter{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConsumeIncrementsUpToCeiling(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewUsageService(db, 3)

	for i := 1; i <= 3; i++ {
		status, err := svc.Consume(1)
		require.NoError(t, err)
		assert.True(t, status.WithinLimit)
		assert.Equal(t, i, status.Count)
		assert.Equal(t, 3-i, status.Remaining)
	}

	// The ceiling holds and the stored count does not move
	status, err := svc.Consume(1)
	require.NoError(t, err)
	assert.False(t, status.WithinLimit)
	assert.Equal(t, 3, status.Count)
	assert.Equal(t, 0, status.Remaining)
}

func TestConsumeIsPerUser(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewUsageService(db, 2)

	_, err := svc.Consume(1)
	require.NoError(t, err)
	_, err = svc.Consume(1)
	require.NoError(t, err)

	status, err := svc.Consume(2)
	require.NoError(t, err)
	assert.True(t, status.WithinLimit)
	assert.Equal(t, 1, status.Count)
}

func TestConsumeDisabledCeiling(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewUsageService(db, 0)

	status, err := svc.Consume(1)
	require.NoError(t, err)
	assert.False(t, status.WithinLimit)
	assert.Equal(t, 0, status.Count)

	var count int64
	require.NoError(t, db.Model(&models.UsageCounter{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConsumeConcurrentNeverOvershoots(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewUsageService(db, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := svc.Consume(7)
			if err != nil {
				return
			}
			if status.WithinLimit {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)

	var counter models.UsageCounter
	require.NoError(t, db.Where("user_id = ?", 7).First(&counter).Error)
	assert.Equal(t, 10, counter.Count)
}

func TestUsageResetIsNextUTCMidnight(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewUsageService(db, 5)

	status, err := svc.Status(1)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, status.Reset.Location())
	assert.Equal(t, 0, status.Reset.Hour())
	assert.True(t, status.Reset.After(time.Now().UTC()))
	assert.LessOrEqual(t, status.Reset.Sub(time.Now().UTC()), 24*time.Hour)
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2025, 3, 9, 23, 59, 59, 0, time.FixedZone("MST", -7*3600))
	assert.Equal(t, "2025-03-10", dayKey(ts))
}
