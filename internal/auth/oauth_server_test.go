package auth

import (
	"context"
	"testing"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/menulink/menulink-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.OAuthClient{}, &models.OAuthToken{})
	require.NoError(t, err)

	return db
}

func TestOAuthServerInitialization(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, "test-jwt-secret-key-32-characters")
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
}

func TestIntegrationTokenGeneration(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, "test-jwt-secret-key-32-characters")
	require.NotNil(t, oauthService)

	// The owning account is required: issued tokens act as this user
	owner := &models.User{
		Email:    "owner@example.com",
		Password: "irrelevant",
		Name:     "Owner",
		Role:     "owner",
	}
	err := db.Create(owner).Error
	require.NoError(t, err)

	plainSecret := "test_secret"
	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(plainSecret), bcrypt.DefaultCost)
	require.NoError(t, err)

	client := &models.OAuthClient{
		ID:     "pos_bridge",
		Secret: string(hashedSecret),
		Domain: "http://localhost",
		Scopes: "menus:read",
		UserID: owner.ID,
	}
	err = db.Create(client).Error
	require.NoError(t, err)

	ctx := context.Background()
	tokenRequest := &oauth2.TokenGenerateRequest{
		ClientID:     "pos_bridge",
		ClientSecret: plainSecret,
		Scope:        "menus:read",
	}

	tokenInfo, err := oauthService.GetServer().Manager.GenerateAccessToken(ctx, oauth2.ClientCredentials, tokenRequest)
	assert.NoError(t, err)
	require.NotNil(t, tokenInfo)
	assert.NotEmpty(t, tokenInfo.GetAccess())

	// Access token must be a JWT
	accessToken := tokenInfo.GetAccess()
	assert.Contains(t, accessToken, ".")
	assert.True(t, len(accessToken) > 50)
}

func TestClientStoreIntegration(t *testing.T) {
	db := setupTestDB(t)

	client := &models.OAuthClient{
		ID:     "integration_test_client",
		Secret: "integration_test_secret",
		Domain: "http://localhost:8080",
		Scopes: "menus:read",
	}
	err := db.Create(client).Error
	require.NoError(t, err)

	clientStore := NewGormClientStore(db)
	ctx := context.Background()

	retrievedClient, err := clientStore.GetByID(ctx, "integration_test_client")
	assert.NoError(t, err)
	require.NotNil(t, retrievedClient)
	assert.Equal(t, "integration_test_client", retrievedClient.GetID())
}
