package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/middleware"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/utils"
	"github.com/business-nexus/backend/websocket"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// envelope mirrors the uniform response body for decoding in tests.
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination *utils.Pagination `json:"pagination"`
}

// setupRouter builds the API against a fresh in-memory database, mirroring
// the route table in main.go.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Request{}, &models.Message{}))
	database.DB = db

	hub := websocket.NewHub()
	go hub.Run()
	h := NewHandler(hub)

	router := gin.New()

	auth := router.Group("/api/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/me", middleware.JWTAuth(), h.Me)

	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	api.GET("/users/entrepreneurs", middleware.RequireRole(models.RoleInvestor), h.GetEntrepreneurs)
	api.GET("/users/investors", middleware.RequireRole(models.RoleEntrepreneur), h.GetInvestors)
	api.PUT("/users/profile", h.UpdateProfile)
	api.GET("/users/:id", h.GetUser)
	api.POST("/requests", middleware.RequireRole(models.RoleInvestor), h.CreateRequest)
	api.GET("/requests", h.GetRequests)
	api.GET("/requests/:id", h.GetRequest)
	api.PATCH("/requests/:id", middleware.RequireRole(models.RoleEntrepreneur), h.RespondToRequest)
	api.DELETE("/requests/:id", middleware.RequireRole(models.RoleInvestor), h.DeleteRequest)
	api.POST("/chat/messages", h.SendMessage)
	api.GET("/chat/messages/:userId", h.GetMessages)
	api.PATCH("/chat/messages/:userId/read", h.MarkMessagesRead)
	api.GET("/chat/conversations", h.GetConversations)
	api.GET("/chat/unread-count", h.GetUnreadCount)

	return router
}

// createUser inserts an active account and returns it with a valid token.
func createUser(t *testing.T, name string, role models.Role) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "secret123",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

// setInactive deactivates an account directly in the database.
func setInactive(userID string) error {
	return database.DB.Model(&models.User{}).
		Where("id = ?", userID).Update("is_active", false).Error
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
