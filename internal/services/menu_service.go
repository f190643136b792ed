package services

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/menulink/menulink-api/internal/billing"
	"github.com/menulink/menulink-api/internal/models"
	"gorm.io/gorm"
)

// ErrMenuNotFound covers missing, soft-deleted and unpublished menus alike on
// public reads, and not-owned menus on authenticated ones. Callers translate
// it to 404 without distinguishing the cases.
var ErrMenuNotFound = errors.New("menu not found")

// MenuUpdate carries the mutable menu fields; nil means "leave unchanged".
type MenuUpdate struct {
	Name           *string `json:"name"`
	RestaurantName *string `json:"restaurant_name"`
	Description    *string `json:"description"`
}

// MenuService provides menu management for owners and the public read path
type MenuService interface {
	// CreateMenu stores a new menu as an unpublished draft. The ID and
	// slug are always assigned here; caller-provided values are ignored.
	CreateMenu(menu *models.Menu) error
	// ListMenus returns the owner's active (non-deleted) menus
	ListMenus(ownerID uint) ([]models.Menu, error)
	// ListDeletedMenus returns the owner's soft-deleted menus
	ListDeletedMenus(ownerID uint) ([]models.Menu, error)
	// GetMenu returns one of the owner's active menus with sections and items
	GetMenu(ownerID uint, id string) (*models.Menu, error)
	// UpdateMenu applies the non-nil fields of upd to an owned active menu
	UpdateMenu(ownerID uint, id string, upd MenuUpdate) (*models.Menu, error)
	// SetPublished flips the publish flag on an owned active menu
	SetPublished(ownerID uint, id string, published bool) (*models.Menu, error)
	// SoftDeleteMenu marks an owned menu deleted and unpublishes it
	SoftDeleteMenu(ownerID uint, id string) error
	// ResolvePublicMenu returns a visible menu by ID for anonymous callers
	ResolvePublicMenu(id string) (*models.Menu, error)
	// ResolvePublicMenuBySlug is ResolvePublicMenu keyed by slug
	ResolvePublicMenuBySlug(slug string) (*models.Menu, error)
}

type menuService struct {
	db *gorm.DB
}

// NewMenuService creates a new instance of MenuService
func NewMenuService(db *gorm.DB) MenuService {
	return &menuService{db: db}
}

func (s *menuService) CreateMenu(menu *models.Menu) error {
	menu.ID = uuid.New().String()
	slug, err := s.uniqueSlug(menu.RestaurantName, menu.Name)
	if err != nil {
		return err
	}
	menu.Slug = slug
	menu.IsPublished = false
	menu.DeletedOn = nil
	return s.db.Create(menu).Error
}

func (s *menuService) ListMenus(ownerID uint) ([]models.Menu, error) {
	var menus []models.Menu
	if err := s.db.Where("owner_id = ? AND deleted_on IS NULL", ownerID).Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (s *menuService) ListDeletedMenus(ownerID uint) ([]models.Menu, error) {
	var menus []models.Menu
	if err := s.db.Where("owner_id = ? AND deleted_on IS NOT NULL", ownerID).Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (s *menuService) GetMenu(ownerID uint, id string) (*models.Menu, error) {
	menu, err := s.loadNested(&models.Menu{}, "id = ? AND owner_id = ? AND deleted_on IS NULL", id, ownerID)
	if err != nil {
		return nil, err
	}
	sortMenu(menu)
	return menu, nil
}

func (s *menuService) UpdateMenu(ownerID uint, id string, upd MenuUpdate) (*models.Menu, error) {
	menu, err := s.ownedActiveMenu(ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		menu.Name = *upd.Name
	}
	if upd.RestaurantName != nil {
		menu.RestaurantName = *upd.RestaurantName
	}
	if upd.Description != nil {
		menu.Description = *upd.Description
	}
	if err := s.db.Save(menu).Error; err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *menuService) SetPublished(ownerID uint, id string, published bool) (*models.Menu, error) {
	menu, err := s.ownedActiveMenu(ownerID, id)
	if err != nil {
		return nil, err
	}
	menu.IsPublished = published
	if err := s.db.Save(menu).Error; err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *menuService) SoftDeleteMenu(ownerID uint, id string) error {
	menu, err := s.ownedActiveMenu(ownerID, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	menu.DeletedOn = &now
	// A deleted menu must never remain publicly visible, and Visible()
	// already guarantees that; unpublishing keeps the stored flags honest.
	menu.IsPublished = false
	return s.db.Save(menu).Error
}

func (s *menuService) ResolvePublicMenu(id string) (*models.Menu, error) {
	return s.resolvePublic("id = ?", id)
}

func (s *menuService) ResolvePublicMenuBySlug(slug string) (*models.Menu, error) {
	return s.resolvePublic("slug = ?", slug)
}

// resolvePublic loads a menu and applies the visibility predicate. A hidden
// menu and a missing one are indistinguishable to the caller.
func (s *menuService) resolvePublic(query string, arg interface{}) (*models.Menu, error) {
	menu, err := s.loadNested(&models.Menu{}, query, arg)
	if err != nil {
		return nil, err
	}
	if !menu.Visible() {
		return nil, ErrMenuNotFound
	}
	sortMenu(menu)
	for i := range menu.Sections {
		for j := range menu.Sections[i].Items {
			item := &menu.Sections[i].Items[j]
			item.DisplayPrice = billing.FormatAmount(item.PriceCents, item.Currency)
		}
	}
	return menu, nil
}

func (s *menuService) ownedActiveMenu(ownerID uint, id string) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.Where("id = ? AND owner_id = ? AND deleted_on IS NULL", id, ownerID).First(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// loadNested fetches a menu with its sections and items preloaded in storage
// order, so the stable sort below breaks sort_order ties deterministically.
func (s *menuService) loadNested(dest *models.Menu, query string, args ...interface{}) (*models.Menu, error) {
	err := s.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_sections.id ASC")
		}).
		Preload("Sections.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_items.id ASC")
		}).
		Where(query, args...).
		First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, err
	}
	return dest, nil
}

// sortMenu orders sections and items ascending by sort_order. The sort is
// stable: ties keep their storage order.
func sortMenu(menu *models.Menu) {
	sort.SliceStable(menu.Sections, func(i, j int) bool {
		return menu.Sections[i].SortOrder < menu.Sections[j].SortOrder
	})
	for i := range menu.Sections {
		items := menu.Sections[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].SortOrder < items[b].SortOrder
		})
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// uniqueSlug derives a URL slug from the restaurant name (falling back to the
// menu name), appending a short random suffix on collision.
func (s *menuService) uniqueSlug(restaurantName, menuName string) (string, error) {
	base := restaurantName
	if base == "" {
		base = menuName
	}
	slug := strings.Trim(slugCleaner.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if slug == "" {
		slug = "menu"
	}

	candidate := slug
	for range [5]int{} {
		var count int64
		if err := s.db.Model(&models.Menu{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = slug + "-" + uuid.New().String()[:8]
	}
	return candidate, nil
}
