package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/menulink/menulink-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	db := setupControllerDB(t)
	controller := NewAuthController(services.NewUserService(db), testJWTSecret)

	router := gin.New()
	auth := router.Group("/api/v1/auth")
	auth.POST("/register", controller.Register)
	auth.POST("/login", controller.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	router := setupAuthRouter(t)

	w := performRequest(router, http.MethodPost, "/api/v1/auth/register",
		`{"email": "owner@example.com", "password": "secret123", "name": "Owner"}`, "")
	requireStatus(t, w, http.StatusCreated)

	// Duplicate email conflicts
	w = performRequest(router, http.MethodPost, "/api/v1/auth/register",
		`{"email": "owner@example.com", "password": "secret123"}`, "")
	requireStatus(t, w, http.StatusConflict)

	w = performRequest(router, http.MethodPost, "/api/v1/auth/login",
		`{"email": "owner@example.com", "password": "secret123"}`, "")
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupAuthRouter(t)

	w := performRequest(router, http.MethodPost, "/api/v1/auth/register",
		`{"email": "owner@example.com", "password": "secret123"}`, "")
	requireStatus(t, w, http.StatusCreated)

	w = performRequest(router, http.MethodPost, "/api/v1/auth/login",
		`{"email": "owner@example.com", "password": "wrong"}`, "")
	requireStatus(t, w, http.StatusUnauthorized)
}
