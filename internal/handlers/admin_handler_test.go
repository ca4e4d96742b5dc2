package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodnessw/election-api/internal/domain/admin"
	"github.com/goodnessw/election-api/internal/middleware/auth"
	"github.com/goodnessw/election-api/internal/storage/postgres"
)

type stubAdminRepo struct {
	postgres.AdminRepository
	account *admin.Admin
}

func (s *stubAdminRepo) GetByUsername(username string) (*admin.Admin, error) {
	if s.account != nil && s.account.Username == username {
		return s.account, nil
	}
	return nil, postgres.ErrNotFound
}

func newAdminRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	account, err := admin.NewAdmin("console", "s3cret-pass")
	require.NoError(t, err)

	tokens, err := auth.NewTokenManager("test-secret", 24*time.Hour)
	require.NoError(t, err)

	handler := NewAdminHandler(&stubAdminRepo{account: account}, tokens)

	router := gin.New()
	router.POST("/api/admin/login", handler.Login)
	router.GET("/api/admin/session", tokens.RequireAdmin(), handler.Session)

	return router, tokens
}

func postLogin(router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(gin.H{"username": username, "password": password})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesToken(t *testing.T) {
	router, tokens := newAdminRouter(t)

	w := postLogin(router, "console", "s3cret-pass")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Token    string `json:"token"`
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "console", body.Data.Username)

	claims, err := tokens.Verify(body.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "console", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newAdminRouter(t)

	wrongPassword := postLogin(router, "console", "wrong-pass")
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	unknownUser := postLogin(router, "ghost", "s3cret-pass")
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	// Both failures return the same message
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLoginRequiresBothFields(t *testing.T) {
	router, _ := newAdminRouter(t)

	w := postLogin(router, "console", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionEchoesIdentity(t *testing.T) {
	router, tokens := newAdminRouter(t)

	token, _, err := tokens.Issue("console")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "console")

	unauthenticated := httptest.NewRecorder()
	router.ServeHTTP(unauthenticated, httptest.NewRequest(http.MethodGet, "/api/admin/session", nil))
	assert.Equal(t, http.StatusUnauthorized, unauthenticated.Code)
}
