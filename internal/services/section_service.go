package services

import (
	"errors"

	"github.com/menulink/menulink-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrItemNotFound    = errors.New("item not found")
)

// SectionService manages the sections and items under a menu. Every method
// verifies the menu belongs to the caller before touching children, so a
// foreign ID probes the same 404 as a missing one.
type SectionService interface {
	CreateSection(ownerID uint, menuID string, section *models.MenuSection) error
	UpdateSection(ownerID uint, menuID string, sectionID uint, section models.MenuSection) (*models.MenuSection, error)
	DeleteSection(ownerID uint, menuID string, sectionID uint) error
	CreateItem(ownerID uint, menuID string, sectionID uint, item *models.MenuItem) error
	UpdateItem(ownerID uint, menuID string, itemID uint, item models.MenuItem) (*models.MenuItem, error)
	DeleteItem(ownerID uint, menuID string, itemID uint) error
}

type sectionService struct {
	db *gorm.DB
}

func NewSectionService(db *gorm.DB) SectionService {
	return &sectionService{db: db}
}

func (s *sectionService) CreateSection(ownerID uint, menuID string, section *models.MenuSection) error {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return err
	}
	section.MenuID = menuID
	return s.db.Create(section).Error
}

func (s *sectionService) UpdateSection(ownerID uint, menuID string, sectionID uint, upd models.MenuSection) (*models.MenuSection, error) {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return nil, err
	}
	var section models.MenuSection
	if err := s.db.Where("id = ? AND menu_id = ?", sectionID, menuID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	section.Name = upd.Name
	section.SortOrder = upd.SortOrder
	if err := s.db.Save(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *sectionService) DeleteSection(ownerID uint, menuID string, sectionID uint) error {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return err
	}
	res := s.db.Where("id = ? AND menu_id = ?", sectionID, menuID).Delete(&models.MenuSection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

func (s *sectionService) CreateItem(ownerID uint, menuID string, sectionID uint, item *models.MenuItem) error {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return err
	}
	var section models.MenuSection
	if err := s.db.Where("id = ? AND menu_id = ?", sectionID, menuID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}
	item.SectionID = section.ID
	return s.db.Create(item).Error
}

func (s *sectionService) UpdateItem(ownerID uint, menuID string, itemID uint, upd models.MenuItem) (*models.MenuItem, error) {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return nil, err
	}
	item, err := s.itemInMenu(menuID, itemID)
	if err != nil {
		return nil, err
	}
	item.Name = upd.Name
	item.Description = upd.Description
	item.PriceCents = upd.PriceCents
	if upd.Currency != "" {
		item.Currency = upd.Currency
	}
	item.ImageURL = upd.ImageURL
	item.IsAvailable = upd.IsAvailable
	item.SortOrder = upd.SortOrder
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *sectionService) DeleteItem(ownerID uint, menuID string, itemID uint) error {
	if err := s.checkMenuOwnership(ownerID, menuID); err != nil {
		return err
	}
	item, err := s.itemInMenu(menuID, itemID)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func (s *sectionService) checkMenuOwnership(ownerID uint, menuID string) error {
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

func (s *sectionService) itemInMenu(menuID string, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.
		Joins("JOIN menu_sections ON menu_sections.id = menu_items.section_id").
		Where("menu_items.id = ? AND menu_sections.menu_id = ?", itemID, menuID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
