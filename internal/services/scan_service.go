package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/menulink/menulink-api/internal/models"
	"gorm.io/gorm"
)

// ErrNoActiveQRCode means the menu has tracking disabled (or never set up);
// the scan is dropped without recording anything.
var ErrNoActiveQRCode = errors.New("no active qr code for menu")

// ScanMetadata is the best-effort request context attached to a scan. IP
// comes from proxy headers and is trusted as-is; SessionToken may be supplied
// by the client, otherwise a low-entropy fallback is generated.
type ScanMetadata struct {
	UserAgent    string
	IP           string
	Referrer     string
	SessionToken string
}

// ScanService records QR scans against a menu's active code
type ScanService interface {
	// TrackScan resolves the menu's active QR code and appends a ScanEvent.
	// Returns ErrNoActiveQRCode, with no write, when the menu has none.
	TrackScan(menuID string, meta ScanMetadata) (*models.ScanEvent, error)
}

type scanService struct {
	db *gorm.DB
}

func NewScanService(db *gorm.DB) ScanService {
	return &scanService{db: db}
}

func (s *scanService) TrackScan(menuID string, meta ScanMetadata) (*models.ScanEvent, error) {
	// Newest active code wins when duplicates exist; rotation keeps at most
	// one active, so this is only a tie-break for legacy rows.
	var qr models.QRCode
	err := s.db.
		Where("menu_id = ? AND is_active = ?", menuID, true).
		Order("created_at DESC, id DESC").
		First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveQRCode
	}
	if err != nil {
		return nil, err
	}

	token := meta.SessionToken
	if token == "" {
		token = fallbackSessionToken(meta.UserAgent)
	}

	// No idempotency: duplicate POSTs append duplicate events.
	event := &models.ScanEvent{
		ID:           uuid.New().String(),
		QRCodeID:     qr.ID,
		MenuID:       qr.MenuID,
		UserAgent:    meta.UserAgent,
		IP:           meta.IP,
		Referrer:     meta.Referrer,
		SessionToken: token,
		ScannedAt:    time.Now().UTC(),
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// fallbackSessionToken builds a coarse session grouping token from the
// user-agent, the current time and a few random bytes. It is not unique and
// not a security identifier.
func fallbackSessionToken(userAgent string) string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	raw := fmt.Sprintf("%s|%d|%x", userAgent, time.Now().UnixNano(), buf)
	token := base64.StdEncoding.EncodeToString([]byte(raw))
	if len(token) > 32 {
		token = token[:32]
	}
	return token
}
