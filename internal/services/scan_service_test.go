package services

import (
	"testing"
	"time"

	"github.com/menulink/menulink-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackScanNoActiveCode(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewScanService(db)

	menuSvc := NewMenuService(db)
	menu := createTestMenu(t, menuSvc, 1, true)

	// No code at all
	_, err := svc.TrackScan(menu.ID, ScanMetadata{})
	assert.ErrorIs(t, err, ErrNoActiveQRCode)

	// An inactive code does not count
	require.NoError(t, db.Create(&models.QRCode{ID: "qr-old", MenuID: menu.ID, IsActive: false}).Error)
	_, err = svc.TrackScan(menu.ID, ScanMetadata{})
	assert.ErrorIs(t, err, ErrNoActiveQRCode)

	var count int64
	require.NoError(t, db.Model(&models.ScanEvent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTrackScanRecordsMetadata(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewScanService(db)

	require.NoError(t, db.Create(&models.QRCode{ID: "qr-1", MenuID: "menu-1", IsActive: true}).Error)

	event, err := svc.TrackScan("menu-1", ScanMetadata{
		UserAgent:    "Mozilla/5.0",
		IP:           "203.0.113.9",
		Referrer:     "https://maps.example.com",
		SessionToken: "visitor-session-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "qr-1", event.QRCodeID)
	assert.Equal(t, "menu-1", event.MenuID)
	assert.Equal(t, "Mozilla/5.0", event.UserAgent)
	assert.Equal(t, "203.0.113.9", event.IP)
	assert.Equal(t, "https://maps.example.com", event.Referrer)
	assert.Equal(t, "visitor-session-1", event.SessionToken)
	assert.WithinDuration(t, time.Now().UTC(), event.ScannedAt, 5*time.Second)
}

func TestTrackScanPicksNewestActiveCode(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewScanService(db)

	older := models.QRCode{ID: "qr-a", MenuID: "menu-1", IsActive: true, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.QRCode{ID: "qr-b", MenuID: "menu-1", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	event, err := svc.TrackScan("menu-1", ScanMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "qr-b", event.QRCodeID)
}

func TestTrackScanFallbackSessionToken(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewScanService(db)

	require.NoError(t, db.Create(&models.QRCode{ID: "qr-1", MenuID: "menu-1", IsActive: true}).Error)

	event, err := svc.TrackScan("menu-1", ScanMetadata{UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.SessionToken)
	assert.LessOrEqual(t, len(event.SessionToken), 32)
}

func TestTrackScanDuplicatesAppend(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewScanService(db)

	require.NoError(t, db.Create(&models.QRCode{ID: "qr-1", MenuID: "menu-1", IsActive: true}).Error)

	meta := ScanMetadata{SessionToken: "same-session"}
	_, err := svc.TrackScan("menu-1", meta)
	require.NoError(t, err)
	_, err = svc.TrackScan("menu-1", meta)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.ScanEvent{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
