package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/repositories/mock"
	"github.com/franes/franes-backend/src/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testTokenSecret = "handler-test-secret"

func testUserService(repo *mock.UserRepository) *services.UserService {
	return services.NewUserServiceWithRepo(repo, services.NewPasswordHasher(bcrypt.MinCost))
}

func storedAdmin(t *testing.T, id int, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
		IsAdmin:      true,
	}
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func authRouter(repo *mock.UserRepository) *gin.Engine {
	users := testUserService(repo)
	issuer := services.NewTokenIssuer(testTokenSecret, 60)
	handler := NewAuthHandler(users, issuer)

	router := gin.New()
	router.POST("/auth/token", handler.HandleLogin)
	router.POST("/auth/bootstrap", handler.HandleBootstrap)
	return router
}

func TestHandleLogin_Success(t *testing.T) {
	admin := storedAdmin(t, 1, "alice", "password123")
	repo := mock.NewUserRepository()
	repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		if username != admin.Username {
			return nil, pgx.ErrNoRows
		}
		return admin, nil
	}
	router := authRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("/auth/token", url.Values{
		"username": {"alice"},
		"password": {"password123"},
	}))

	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	issuer := services.NewTokenIssuer(testTokenSecret, 60)
	userID, err := issuer.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, userID)
}

func TestHandleLogin_FailuresAreIndistinguishable(t *testing.T) {
	admin := storedAdmin(t, 1, "alice", "password123")
	inactive := storedAdmin(t, 2, "bob", "password123")
	inactive.IsActive = false

	repo := mock.NewUserRepository()
	repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		switch username {
		case "alice":
			return admin, nil
		case "bob":
			return inactive, nil
		}
		return nil, pgx.ErrNoRows
	}
	router := authRouter(repo)

	tests := []struct {
		name string
		form url.Values
	}{
		{"unknown user", url.Values{"username": {"nobody"}, "password": {"password123"}}},
		{"wrong password", url.Values{"username": {"alice"}, "password": {"wrong-password"}}},
		{"inactive account", url.Values{"username": {"bob"}, "password": {"password123"}}},
		{"missing fields", url.Values{"username": {"alice"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, formRequest("/auth/token", tt.form))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			assert.Contains(t, w.Body.String(), "incorrect username or password")
		})
	}
}

func TestHandleBootstrap_CreatesFirstAdmin(t *testing.T) {
	repo := mock.NewUserRepository()
	router := authRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/bootstrap",
		`{"username": "root", "password": "password123"}`))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	require.Len(t, repo.Calls["Create"], 1)
	created := repo.Calls["Create"][0].(*models.User)
	assert.True(t, created.IsAdmin)
	assert.True(t, created.IsActive)
}

func TestHandleBootstrap_RefusedWhenAdminExists(t *testing.T) {
	repo := mock.NewUserRepository()
	repo.HasAdminsFunc = func(ctx context.Context) (bool, error) { return true, nil }
	router := authRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/bootstrap",
		`{"username": "root", "password": "password123"}`))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin already initialized")
}

func TestHandleBootstrap_BadRequests(t *testing.T) {
	router := authRouter(mock.NewUserRepository())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username": `},
		{"missing password", `{"username": "root"}`},
		{"short username", `{"username": "ab", "password": "password123"}`},
		{"short password", `{"username": "root", "password": "short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/bootstrap", tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
