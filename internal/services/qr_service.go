package services

import (
	"github.com/google/uuid"
	"github.com/menulink/menulink-api/internal/models"
	"gorm.io/gorm"
)

// QRService manages the QR codes attached to a menu
type QRService interface {
	// RotateQRCode creates a new active code and deactivates the menu's
	// previous ones in the same transaction, keeping at most one active.
	RotateQRCode(ownerID uint, menuID, label string) (*models.QRCode, error)
	// ListQRCodes returns every code of an owned menu, newest first
	ListQRCodes(ownerID uint, menuID string) ([]models.QRCode, error)
}

type qrService struct {
	db *gorm.DB
}

func NewQRService(db *gorm.DB) QRService {
	return &qrService{db: db}
}

func (s *qrService) RotateQRCode(ownerID uint, menuID, label string) (*models.QRCode, error) {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return nil, err
	}

	code := &models.QRCode{
		ID:       uuid.New().String(),
		MenuID:   menuID,
		Label:    label,
		IsActive: true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.QRCode{}).
			Where("menu_id = ? AND is_active = ?", menuID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
	if err != nil {
		return nil, err
	}
	return code, nil
}

func (s *qrService) ListQRCodes(ownerID uint, menuID string) ([]models.QRCode, error) {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return nil, err
	}
	var codes []models.QRCode
	if err := s.db.Where("menu_id = ?", menuID).Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *qrService) checkMenuOwnership(ownerID uint, menuID string) error {
	var count int64
	err := s.db.Model(&models.Menu{}).
		Where("id = ? AND owner_id = ? AND deleted_on IS NULL", menuID, ownerID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMenuNotFound
	}
	return nil
}
