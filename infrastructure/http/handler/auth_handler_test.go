package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/service/jwt"
	"github.com/fleetora/fleetora/infrastructure/service/password"
)

type stubLimiter struct {
	allowed bool
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allowed, nil }
func (s stubLimiter) Close() error                                { return nil }

func newAuthRouter(t *testing.T, repo outbound.UserRepository, allowed bool) *mux.Router {
	t.Helper()
	tokens, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)

	router := mux.NewRouter()
	NewAuthHandler(repo, password.NewBcryptService(4), tokens, stubLimiter{allowed: allowed}, noopLogger{}).
		RegisterRoutes(router)
	return router
}

func TestLogin(t *testing.T) {
	passwords := password.NewBcryptService(4)
	hashed, err := passwords.Hash("correct-horse")
	require.NoError(t, err)

	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, "sam@fleetora.local").
		Return(&entity.User{ID: "u1", Email: "sam@fleetora.local", Password: hashed, Role: entity.RoleAdmin}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(`{"email":"sam@fleetora.local","password":"correct-horse"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(t, repo, true).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User  *entity.User `json:"user"`
		Token string       `json:"token"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "u1", body.User.ID)
	assert.NotEmpty(t, body.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	passwords := password.NewBcryptService(4)
	hashed, err := passwords.Hash("correct-horse")
	require.NoError(t, err)

	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, "sam@fleetora.local").
		Return(&entity.User{ID: "u1", Email: "sam@fleetora.local", Password: hashed, Role: entity.RoleAdmin}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(`{"email":"sam@fleetora.local","password":"wrong"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(t, repo, true).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Unknown email and wrong password answer identically.
func TestLoginUnknownEmail(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, "ghost@fleetora.local").
		Return(nil, outbound.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(`{"email":"ghost@fleetora.local","password":"whatever1"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(t, repo, true).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Invalid credentials", body.Message)
}

func TestLoginRateLimited(t *testing.T) {
	repo := new(mockUserRepository)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(`{"email":"sam@fleetora.local","password":"correct-horse"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(t, repo, false).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestRegister(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "new@fleetora.local").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@fleetora.local" && u.Password != "longenough" && u.ID != ""
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		jsonBody(`{"name":"Sam","email":"new@fleetora.local","password":"longenough","role":"DRIVER","matricule":"M-42"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(t, repo, true).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		User  *entity.User `json:"user"`
		Token string       `json:"token"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "new@fleetora.local", body.User.Email)
	assert.NotEmpty(t, body.Token)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "taken@fleetora.local").Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		jsonBody(`{"name":"Sam","email":"taken@fleetora.local","password":"longenough","role":"DRIVER"}`))
	rec := httptest.NewRecorder()
	newAuthRouter(t, repo, true).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterValidation(t *testing.T) {
	repo := new(mockUserRepository)
	router := newAuthRouter(t, repo, true)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.co","password":"longenough","role":"DRIVER"}`},
		{"bad email", `{"name":"Sam","email":"nope","password":"longenough","role":"DRIVER"}`},
		{"short password", `{"name":"Sam","email":"a@b.co","password":"short","role":"DRIVER"}`},
		{"bad role", `{"name":"Sam","email":"a@b.co","password":"longenough","role":"ROOT"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", jsonBody(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
