package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/menulink/menulink-api/internal/database"
	"github.com/menulink/menulink-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Seeds a local sqlite database with a dev restaurant owner, a published
// sample menu with an active QR code, and a client_credentials integration
// client. Safe to re-run: existing rows are left alone.
func main() {
	dbPath := flag.String("db", "menulink.sqlite", "Path to the sqlite database")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	owner := getOrCreateOwner(db)
	menu := getOrCreateSampleMenu(db, owner.ID)
	createActiveQRCode(db, menu.ID)
	createIntegrationClient(db, owner.ID)
}

// getOrCreateOwner gets or creates the dev restaurant owner account
func getOrCreateOwner(db *gorm.DB) models.User {
	var user models.User
	email := "owner@menulink.dev"

	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		fmt.Printf("Found existing owner: %s (ID: %d)\n", user.Email, user.ID)
		return user
	}

	user = models.User{
		Email:    email,
		Name:     "Dev Owner",
		Role:     "owner",
		Password: "dev-password-123",
	}
	if err := user.HashPassword(); err != nil {
		log.Fatal("Failed to hash password:", err)
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Failed to create owner:", err)
	}

	fmt.Printf("✓ Created owner %s (ID: %d), password: dev-password-123\n", user.Email, user.ID)
	return user
}

// getOrCreateSampleMenu seeds a published menu with sections and items
func getOrCreateSampleMenu(db *gorm.DB, ownerID uint) models.Menu {
	var menu models.Menu
	if err := db.Where("owner_id = ? AND slug = ?", ownerID, "trattoria-da-mario").First(&menu).Error; err == nil {
		fmt.Printf("Found existing sample menu: %s\n", menu.ID)
		return menu
	}

	menu = models.Menu{
		ID:             "dev-menu-0001",
		OwnerID:        ownerID,
		Name:           "Dinner Menu",
		RestaurantName: "Trattoria da Mario",
		Slug:           "trattoria-da-mario",
		Description:    "Seasonal Italian classics",
		IsPublished:    true,
		Sections: []models.MenuSection{
			{
				Name:      "Antipasti",
				SortOrder: 0,
				Items: []models.MenuItem{
					{Name: "Bruschetta", Description: "Grilled bread, tomato, basil", PriceCents: 650, Currency: "usd", IsAvailable: true, SortOrder: 0},
					{Name: "Burrata", Description: "With heirloom tomatoes", PriceCents: 1200, Currency: "usd", IsAvailable: true, SortOrder: 1},
				},
			},
			{
				Name:      "Primi",
				SortOrder: 1,
				Items: []models.MenuItem{
					{Name: "Cacio e Pepe", PriceCents: 1600, Currency: "usd", IsAvailable: true, SortOrder: 0},
					{Name: "Lasagna della Casa", PriceCents: 1850, Currency: "usd", IsAvailable: true, SortOrder: 1},
				},
			},
		},
	}
	if err := db.Create(&menu).Error; err != nil {
		log.Fatal("Failed to create sample menu:", err)
	}

	fmt.Printf("✓ Created sample menu %s (slug: %s)\n", menu.ID, menu.Slug)
	return menu
}

// createActiveQRCode makes sure the sample menu has one active QR code
func createActiveQRCode(db *gorm.DB, menuID string) {
	var existing models.QRCode
	if err := db.Where("menu_id = ? AND is_active = ?", menuID, true).First(&existing).Error; err == nil {
		fmt.Printf("Found existing active QR code: %s\n", existing.ID)
		return
	}

	code := models.QRCode{
		ID:       "dev-qr-0001",
		MenuID:   menuID,
		Label:    "Table tent",
		IsActive: true,
	}
	if err := db.Create(&code).Error; err != nil {
		log.Fatal("Failed to create QR code:", err)
	}

	fmt.Printf("✓ Created active QR code %s for menu %s\n", code.ID, menuID)
}

// createIntegrationClient seeds a client_credentials OAuth client for the owner
func createIntegrationClient(db *gorm.DB, ownerID uint) {
	clientID := "dev-client"
	clientSecret := "dev-secret-123"

	var existing models.OAuthClient
	if err := db.Where("id = ?", clientID).First(&existing).Error; err == nil {
		fmt.Println("Development client already exists!")
		fmt.Printf("Client ID: %s\n", clientID)
		fmt.Printf("Client Secret: %s\n", clientSecret)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash secret:", err)
	}

	client := models.OAuthClient{
		ID:        clientID,
		Secret:    string(hash),
		Name:      "Development Integration Client",
		Domain:    "http://localhost",
		UserID:    ownerID,
		Scopes:    "read write",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&client).Error; err != nil {
		log.Fatal("Failed to create client:", err)
	}

	fmt.Println("✓ Development OAuth client created!")
	fmt.Printf("Client ID: %s\n", clientID)
	fmt.Printf("Client Secret: %s\n", clientSecret)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://localhost:8080/oauth/token \\\n")
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", clientID)
	fmt.Printf("  -d 'client_secret=%s'\n", clientSecret)
}
