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
	"github.com/fleetora/fleetora/infrastructure/service/password"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindAll(ctx context.Context, filter outbound.UserFilter, p pagination.Pagination) ([]*entity.User, int, error) {
	args := m.Called(ctx, filter, p)
	return args.Get(0).([]*entity.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) SoftDeleteMany(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) FindDriversWithTrips(ctx context.Context, start, end time.Time) ([]*entity.DriverTrips, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]*entity.DriverTrips), args.Error(1)
}

func newUserRouter(repo outbound.UserRepository) *mux.Router {
	router := mux.NewRouter()
	NewUserHandler(repo, password.NewBcryptService(4), noopLogger{}).RegisterRoutes(router)
	return router
}

func TestUserListFiltersByRole(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindAll", mock.Anything,
		outbound.UserFilter{Role: entity.RoleDriver},
		pagination.Pagination{Page: 1, Limit: 50}).
		Return([]*entity.User{{ID: "u1", Role: entity.RoleDriver}}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/users?role=driver", nil)
	rec := httptest.NewRecorder()
	newUserRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestUserListRejectsUnknownRole(t *testing.T) {
	repo := new(mockUserRepository)

	req := httptest.NewRequest(http.MethodGet, "/users?role=superadmin", nil)
	rec := httptest.NewRecorder()
	newUserRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserBatchDelete(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("SoftDeleteMany", mock.Anything, []string{"u1", "u2"}).Return(2, nil)

	req := httptest.NewRequest(http.MethodDelete, "/users?ids=u1,u2", nil)
	rec := httptest.NewRecorder()
	newUserRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "2 users deleted", body.Message)
	repo.AssertExpectations(t)
}

func TestUserBatchDeleteNoneMatched(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("SoftDeleteMany", mock.Anything, []string{"ghost"}).Return(0, nil)

	req := httptest.NewRequest(http.MethodDelete, "/users?ids=ghost", nil)
	rec := httptest.NewRecorder()
	newUserRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "No valid users found", body.Message)
}

func TestDriversTripsRequiresWindow(t *testing.T) {
	repo := new(mockUserRepository)
	router := newUserRouter(repo)

	for _, target := range []string{
		"/users/drivers-trips",
		"/users/drivers-trips?startingDate=2024-03-01",
		"/users/drivers-trips?startingDate=2024-03-31&endingDate=2024-03-01",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "target %s", target)
	}
	repo.AssertNotCalled(t, "FindDriversWithTrips", mock.Anything, mock.Anything, mock.Anything)
}

func TestDriversTrips(t *testing.T) {
	repo := new(mockUserRepository)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	repo.On("FindDriversWithTrips", mock.Anything, start, end).
		Return([]*entity.DriverTrips{{ID: "u1", Name: "Sam", Trips: []*entity.Trip{}}}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/users/drivers-trips?startingDate=2024-03-01&endingDate=2024-03-31", nil)
	rec := httptest.NewRecorder()
	newUserRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByID", mock.Anything, "u1").
		Return(&entity.User{ID: "u1", Name: "Sam", Email: "sam@fleetora.local", Password: "old-hash", Role: entity.RoleDriver}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Password != "old-hash" && u.Password != "newpassword"
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/users/u1",
		jsonBody(`{"password":"newpassword"}`))
	rec := httptest.NewRecorder()
	newUserRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestUserUpdateRejectsTakenEmail(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByID", mock.Anything, "u1").
		Return(&entity.User{ID: "u1", Email: "sam@fleetora.local", Role: entity.RoleDriver}, nil)
	repo.On("ExistsByEmail", mock.Anything, "taken@fleetora.local").Return(true, nil)

	req := httptest.NewRequest(http.MethodPatch, "/users/u1",
		jsonBody(`{"email":"taken@fleetora.local"}`))
	rec := httptest.NewRecorder()
	newUserRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
