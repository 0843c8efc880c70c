package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ewenharris/setbook-server/internal/api/testutils"
	"github.com/ewenharris/setbook-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCrewMembership(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// First, create a test production
	createReq := models.CreateProductionRequest{
		Title:       "Ensemble Piece",
		Description: "A test production for crew tests",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/productions",
		createReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	var createResponse models.ProductionResponse
	err := json.Unmarshal(w.Body.Bytes(), &createResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, createResponse.ProductionID)
	productionID := createResponse.ProductionID

	// Create another user to add to the crew
	signupReq := models.SignUpRequest{
		Email:      "gaffer@example.com",
		Password:   "Password123",
		Name:       "Gaffer User",
		Department: "Lighting",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/signup",
		signupReq,
		nil,
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Test adding the user to the crew with read permission
	addReq := models.AddCrewRequest{
		Email:       "gaffer@example.com",
		Permissions: "read",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/productions/%s/crew", productionID),
		addReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var addResponse models.AddCrewResponse
	err = json.Unmarshal(w.Body.Bytes(), &addResponse)
	assert.NoError(t, err)
	assert.Equal(t, "success", addResponse.Status)
	assert.Equal(t, "gaffer@example.com", addResponse.Email)
	assert.Equal(t, "read", addResponse.Permissions)

	// Both members appear on the crew list
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/crew", productionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var crewResponse models.CrewListResponse
	err = json.Unmarshal(w.Body.Bytes(), &crewResponse)
	assert.NoError(t, err)
	assert.Len(t, crewResponse.Crew, 2)

	// Login as the crew member
	loginReq := models.LoginRequest{
		Email:    "gaffer@example.com",
		Password: "Password123",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse models.AuthResponse
	err = json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)
	crewToken := loginResponse.Token

	// The production now shows up in the member's list
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/productions",
		nil,
		testutils.AuthHeaders(crewToken),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var listResponse models.ProductionListResponse
	err = json.Unmarshal(w.Body.Bytes(), &listResponse)
	assert.NoError(t, err)
	assert.Len(t, listResponse.Productions, 1)

	// Read permission lets the member look up their rate card; none is
	// configured yet, so this is a not-found rather than a forbidden
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/ratecard", productionID),
		nil,
		testutils.AuthHeaders(crewToken),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Read permission does not allow writing a rate card
	cardReq := models.RateCardRequest{
		DailyRate: 400,
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/ratecard", productionID),
		cardReq,
		testutils.AuthHeaders(crewToken),
	)

	assert.Equal(t, http.StatusForbidden, w.Code)

	// Upgrade the member to write permission
	addReq.Permissions = "write"
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/productions/%s/crew", productionID),
		addReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Now the member can write their rate card
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/ratecard", productionID),
		cardReq,
		testutils.AuthHeaders(crewToken),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Test adding a non-existent user
	invalidAddReq := models.AddCrewRequest{
		Email:       "nonexistent@example.com",
		Permissions: "read",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/productions/%s/crew", productionID),
		invalidAddReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// A user who is not on the crew at all cannot add members
	outsiderSignup := models.SignUpRequest{
		Email:    "outsider@example.com",
		Password: "Password123",
		Name:     "Outsider User",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/signup",
		outsiderSignup,
		nil,
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Email: "outsider@example.com", Password: "Password123"},
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var outsiderLogin models.AuthResponse
	err = json.Unmarshal(w.Body.Bytes(), &outsiderLogin)
	assert.NoError(t, err)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/productions/%s/crew", productionID),
		addReq,
		testutils.AuthHeaders(outsiderLogin.Token),
	)

	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nor can they see who is on it
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/crew", productionID),
		nil,
		testutils.AuthHeaders(outsiderLogin.Token),
	)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
