package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/business-nexus/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesAccountAndToken(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "New Founder",
		"email":    "founder@example.com",
		"password": "secret123",
		"role":     "entrepreneur",
		"bio":      "Building things",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var result struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, models.RoleEntrepreneur, result.User.Role)
	assert.True(t, result.User.IsActive)
	assert.NotEmpty(t, result.Token)

	// The token works against the authenticated surface.
	w = doRequest(t, router, http.MethodGet, "/api/auth/me", result.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &me))
	assert.Equal(t, result.User.ID, me.ID)
}

func TestRegister_Rejections(t *testing.T) {
	router := setupRouter(t)
	createUser(t, "Taken Email", models.RoleInvestor)

	// Duplicate email.
	w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Someone Else",
		"email":    "taken.email@example.com",
		"password": "secret123",
		"role":     "investor",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown role.
	w = doRequest(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Bad Role",
		"email":    "badrole@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password too short.
	w = doRequest(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Short Pass",
		"email":    "short@example.com",
		"password": "abc",
		"role":     "investor",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Credentials(t *testing.T) {
	router := setupRouter(t)
	user, _ := createUser(t, "Login User", models.RoleInvestor)

	w := doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
	assert.NotNil(t, result.User.LastLogin)

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_InactiveAccount(t *testing.T) {
	router := setupRouter(t)
	user, _ := createUser(t, "Disabled User", models.RoleInvestor)
	require.NoError(t, setInactive(user.ID))

	w := doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
