package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/menulink/menulink-api/internal/models"
	"gorm.io/gorm"
)

// IntegrationTokenGenerate generates JWT access tokens for integration
// clients. Claims mirror the session tokens issued at login (uid, role) plus
// the client id as audience, so one middleware validates both.
type IntegrationTokenGenerate struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	DB           *gorm.DB // used to resolve the owning account's role
}

// NewIntegrationTokenGenerate creates the JWT access token generator used by
// the OAuth2 manager.
func NewIntegrationTokenGenerate(key []byte, method jwt.SigningMethod, db *gorm.DB) *IntegrationTokenGenerate {
	return &IntegrationTokenGenerate{
		SignedKey:    key,
		SignedMethod: method,
		DB:           db,
	}
}

// Token is called by the OAuth2 library to generate access tokens. Refresh
// tokens are never issued: client credentials just re-authenticate.
func (g *IntegrationTokenGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	// Client-credentials flow has no request user; the token acts as the
	// client's owning account.
	userID := data.UserID
	if userID == "" {
		userID = data.Client.GetUserID()
	}
	if userID == "" {
		return "", "", fmt.Errorf("cannot generate token: no user ID available")
	}

	// The role always comes from the database at issue time, so a stale
	// client cannot escalate a changed account.
	role, err := g.userRole(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch user role: %w", err)
	}

	claims := jwt.MapClaims{
		"aud":  data.Client.GetID(),
		"exp":  data.TokenInfo.GetAccessCreateAt().Add(data.TokenInfo.GetAccessExpiresIn()).Unix(),
		"uid":  userID,
		"role": role,
	}
	if data.TokenInfo.GetScope() != "" {
		claims["scope"] = data.TokenInfo.GetScope()
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	access, err := token.SignedString(g.SignedKey)
	if err != nil {
		return "", "", err
	}

	return access, "", nil
}

// userRole fetches the owning account's role from the database.
func (g *IntegrationTokenGenerate) userRole(userIDStr string) (string, error) {
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	if err := g.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("user with ID %d not found", userID)
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if user.Role == "" {
		return "owner", nil
	}
	return user.Role, nil
}
