package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEntrepreneurs_RoleGateAndFilters(t *testing.T) {
	router := setupRouter(t)
	_, investorToken := createUser(t, "Ivy Investor", models.RoleInvestor)
	_, entrepreneurToken := createUser(t, "Eli Founder", models.RoleEntrepreneur)

	fintech, _ := createUser(t, "Fin Founder", models.RoleEntrepreneur)
	database.DB.Model(&models.User{}).Where("id = ?", fintech.ID).Updates(map[string]interface{}{
		"industry":       "Fintech",
		"startup":        "PayFast",
		"funding_needed": 500000,
	})
	health, _ := createUser(t, "Heal Founder", models.RoleEntrepreneur)
	database.DB.Model(&models.User{}).Where("id = ?", health.ID).Updates(map[string]interface{}{
		"industry":       "Healthcare",
		"startup":        "MediTrack",
		"funding_needed": 2000000,
	})
	hidden, _ := createUser(t, "Hidden Founder", models.RoleEntrepreneur)
	require.NoError(t, setInactive(hidden.ID))

	// The browse endpoint is investors-only.
	w := doRequest(t, router, http.MethodGet, "/api/users/entrepreneurs", entrepreneurToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/users/entrepreneurs", investorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &listed))
	require.Len(t, listed, 3)
	for _, u := range listed {
		assert.Equal(t, models.RoleEntrepreneur, u.Role)
		assert.NotEqual(t, hidden.ID, u.ID)
	}

	w = doRequest(t, router, http.MethodGet, "/api/users/entrepreneurs?industry=fintech", investorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, fintech.ID, listed[0].ID)

	w = doRequest(t, router, http.MethodGet, "/api/users/entrepreneurs?search=meditrack", investorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, health.ID, listed[0].ID)

	w = doRequest(t, router, http.MethodGet, "/api/users/entrepreneurs?min_funding=1000000", investorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, health.ID, listed[0].ID)
}

func TestGetInvestors_RoleGateAndFilters(t *testing.T) {
	router := setupRouter(t)
	_, investorToken := createUser(t, "Ivy Investor", models.RoleInvestor)
	_, entrepreneurToken := createUser(t, "Eli Founder", models.RoleEntrepreneur)

	angel, angelToken := createUser(t, "Angel Backer", models.RoleInvestor)
	w := doRequest(t, router, http.MethodPut, "/api/users/profile", angelToken, map[string]interface{}{
		"company":    "Seed Capital",
		"industries": []string{"Fintech", "SaaS"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The browse endpoint is entrepreneurs-only.
	w = doRequest(t, router, http.MethodGet, "/api/users/investors", investorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/users/investors", entrepreneurToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &listed))
	assert.Len(t, listed, 2)

	w = doRequest(t, router, http.MethodGet, "/api/users/investors?industry=fintech", entrepreneurToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, angel.ID, listed[0].ID)

	w = doRequest(t, router, http.MethodGet, "/api/users/investors?search=seed+capital", entrepreneurToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, angel.ID, listed[0].ID)
}

func TestGetUser_ActiveOnly(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, "Viewer User", models.RoleInvestor)
	target, _ := createUser(t, "Target Founder", models.RoleEntrepreneur)

	w := doRequest(t, router, http.MethodGet, "/api/users/"+target.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &fetched))
	assert.Equal(t, target.ID, fetched.ID)

	require.NoError(t, setInactive(target.ID))
	w = doRequest(t, router, http.MethodGet, "/api/users/"+target.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/users/no-such-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfile_RoleScopedFields(t *testing.T) {
	router := setupRouter(t)
	_, entrepreneurToken := createUser(t, "Eli Founder", models.RoleEntrepreneur)

	w := doRequest(t, router, http.MethodPut, "/api/users/profile", entrepreneurToken, map[string]interface{}{
		"bio":            "Serial founder",
		"startup":        "PayFast",
		"funding_needed": 750000,
		"stage":          "mvp",
		// Investor fields are ignored for an entrepreneur.
		"company":        "Should Be Ignored",
		"investment_min": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &updated))
	assert.Equal(t, "Serial founder", updated.Bio)
	assert.Equal(t, "PayFast", updated.Startup)
	assert.EqualValues(t, 750000, updated.FundingNeeded)
	assert.Equal(t, "mvp", updated.Stage)
	assert.Empty(t, updated.Company)
	assert.Zero(t, updated.InvestmentMin)

	// An invalid stage value fails validation.
	w = doRequest(t, router, http.MethodPut, "/api/users/profile", entrepreneurToken, map[string]interface{}{
		"stage": "unicorn",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile_InvestorSliceColumns(t *testing.T) {
	router := setupRouter(t)
	investor, token := createUser(t, "Ivy Investor", models.RoleInvestor)

	w := doRequest(t, router, http.MethodPut, "/api/users/profile", token, map[string]interface{}{
		"industries": []string{"Fintech", "AI"},
		"portfolio":  []string{"PayFast"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &updated))
	assert.Equal(t, []string{"Fintech", "AI"}, updated.Industries)
	assert.Equal(t, []string{"PayFast"}, updated.Portfolio)

	var stored models.User
	require.NoError(t, database.DB.First(&stored, "id = ?", investor.ID).Error)
	assert.Equal(t, []string{"Fintech", "AI"}, stored.Industries)
}
