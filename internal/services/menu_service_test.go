package services

import (
	"testing"
	"time"

	"github.com/menulink/menulink-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServiceDB creates an in-memory database with the full schema. A single
// connection keeps the shared in-memory database visible to every query.
func setupServiceDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.MenuSection{},
		&models.MenuItem{},
		&models.QRCode{},
		&models.ScanEvent{},
		&models.UsageCounter{},
		&models.CustomerRecord{},
		&models.SubscriptionRecord{},
	)
	require.NoError(t, err)

	return db
}

func createTestMenu(t *testing.T, svc MenuService, ownerID uint, published bool) *models.Menu {
	menu := &models.Menu{
		OwnerID:        ownerID,
		Name:           "Dinner",
		RestaurantName: "Test Bistro",
	}
	require.NoError(t, svc.CreateMenu(menu))
	if published {
		_, err := svc.SetPublished(ownerID, menu.ID, true)
		require.NoError(t, err)
		menu.IsPublished = true
	}
	return menu
}

func TestCreateMenuAssignsIDAndSlug(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	menu := &models.Menu{OwnerID: 1, Name: "Dinner", RestaurantName: "Luigi's Pasta Bar!"}
	require.NoError(t, svc.CreateMenu(menu))

	assert.NotEmpty(t, menu.ID)
	assert.Equal(t, "luigi-s-pasta-bar", menu.Slug)
	assert.False(t, menu.IsPublished)
}

func TestCreateMenuSlugCollision(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	first := &models.Menu{OwnerID: 1, Name: "Dinner", RestaurantName: "Cafe Roma"}
	require.NoError(t, svc.CreateMenu(first))

	second := &models.Menu{OwnerID: 2, Name: "Dinner", RestaurantName: "Cafe Roma"}
	require.NoError(t, svc.CreateMenu(second))

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "cafe-roma-")
}

func TestResolvePublicMenuVisibility(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	published := createTestMenu(t, svc, 1, true)
	draft := createTestMenu(t, svc, 1, false)
	deleted := createTestMenu(t, svc, 1, true)
	require.NoError(t, svc.SoftDeleteMenu(1, deleted.ID))

	got, err := svc.ResolvePublicMenu(published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	// Draft, deleted and missing menus are indistinguishable to the caller
	_, err = svc.ResolvePublicMenu(draft.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)

	_, err = svc.ResolvePublicMenu(deleted.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)

	_, err = svc.ResolvePublicMenu("no-such-menu")
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestResolvePublicMenuBySlug(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	menu := createTestMenu(t, svc, 1, true)

	got, err := svc.ResolvePublicMenuBySlug(menu.Slug)
	require.NoError(t, err)
	assert.Equal(t, menu.ID, got.ID)

	_, err = svc.ResolvePublicMenuBySlug("unknown-slug")
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestResolvePublicMenuSortingAndPrices(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	menu := createTestMenu(t, svc, 1, true)

	drinks := models.MenuSection{MenuID: menu.ID, Name: "Drinks", SortOrder: 1}
	starters := models.MenuSection{MenuID: menu.ID, Name: "Starters", SortOrder: 0}
	// Same sort order as Starters; insertion order must decide
	specials := models.MenuSection{MenuID: menu.ID, Name: "Specials", SortOrder: 0}
	require.NoError(t, db.Create(&drinks).Error)
	require.NoError(t, db.Create(&starters).Error)
	require.NoError(t, db.Create(&specials).Error)

	require.NoError(t, db.Create(&models.MenuItem{SectionID: starters.ID, Name: "Soup", PriceCents: 550, Currency: "usd", SortOrder: 1}).Error)
	require.NoError(t, db.Create(&models.MenuItem{SectionID: starters.ID, Name: "Salad", PriceCents: 700, Currency: "eur", SortOrder: 0}).Error)

	got, err := svc.ResolvePublicMenu(menu.ID)
	require.NoError(t, err)

	require.Len(t, got.Sections, 3)
	assert.Equal(t, "Starters", got.Sections[0].Name)
	assert.Equal(t, "Specials", got.Sections[1].Name)
	assert.Equal(t, "Drinks", got.Sections[2].Name)

	require.Len(t, got.Sections[0].Items, 2)
	assert.Equal(t, "Salad", got.Sections[0].Items[0].Name)
	assert.Equal(t, "€7.00", got.Sections[0].Items[0].DisplayPrice)
	assert.Equal(t, "Soup", got.Sections[0].Items[1].Name)
	assert.Equal(t, "$5.50", got.Sections[0].Items[1].DisplayPrice)
}

func TestGetMenuOwnership(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	menu := createTestMenu(t, svc, 1, false)

	got, err := svc.GetMenu(1, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, menu.ID, got.ID)

	// Another owner's lookup reads like a missing menu
	_, err = svc.GetMenu(2, menu.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestUpdateMenuPartial(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	menu := createTestMenu(t, svc, 1, false)

	name := "Lunch"
	updated, err := svc.UpdateMenu(1, menu.ID, MenuUpdate{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Lunch", updated.Name)
	assert.Equal(t, menu.RestaurantName, updated.RestaurantName)
	assert.Equal(t, menu.Slug, updated.Slug)
}

func TestSoftDeleteMenu(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	menu := createTestMenu(t, svc, 1, true)
	require.NoError(t, svc.SoftDeleteMenu(1, menu.ID))

	active, err := svc.ListMenus(1)
	require.NoError(t, err)
	assert.Empty(t, active)

	deleted, err := svc.ListDeletedMenus(1)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, menu.ID, deleted[0].ID)
	require.NotNil(t, deleted[0].DeletedOn)
	assert.False(t, deleted[0].IsPublished)
	assert.WithinDuration(t, time.Now().UTC(), *deleted[0].DeletedOn, 5*time.Second)

	// Deleting twice reads like a missing menu
	err = svc.SoftDeleteMenu(1, menu.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestSetPublishedRoundTrip(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMenuService(db)

	menu := createTestMenu(t, svc, 1, false)

	_, err := svc.SetPublished(1, menu.ID, true)
	require.NoError(t, err)
	_, err = svc.ResolvePublicMenu(menu.ID)
	require.NoError(t, err)

	_, err = svc.SetPublished(1, menu.ID, false)
	require.NoError(t, err)
	_, err = svc.ResolvePublicMenu(menu.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}
