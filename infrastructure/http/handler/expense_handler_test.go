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
	"github.com/fleetora/fleetora/pkg/pagination"
)

type mockExpenseRepository struct {
	mock.Mock
}

func (m *mockExpenseRepository) FindAll(ctx context.Context, filter outbound.ExpenseFilter, p pagination.Pagination) ([]*entity.Expense, int, error) {
	args := m.Called(ctx, filter, p)
	return args.Get(0).([]*entity.Expense), args.Int(1), args.Error(2)
}

func (m *mockExpenseRepository) FindByID(ctx context.Context, id string) (*entity.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Expense), args.Error(1)
}

func (m *mockExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newExpenseRouter(repo outbound.ExpenseRepository) *mux.Router {
	router := mux.NewRouter()
	NewExpenseHandler(repo, noopLogger{}).RegisterRoutes(router)
	return router
}

func TestExpenseListParsesFilters(t *testing.T) {
	repo := new(mockExpenseRepository)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	repo.On("FindAll", mock.Anything,
		outbound.ExpenseFilter{
			TripID:       "trip-1",
			Category:     entity.ExpenseFuel,
			StartingDate: &start,
			EndingDate:   &end,
		},
		pagination.Pagination{Page: 1, Limit: 50}).
		Return([]*entity.Expense{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/expenses?trip=trip-1&category=FUEL&startingDate=2024-03-01&endingDate=2024-03-31", nil)
	rec := httptest.NewRecorder()
	newExpenseRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestExpenseListRejectsUnknownCategory(t *testing.T) {
	repo := new(mockExpenseRepository)

	req := httptest.NewRequest(http.MethodGet, "/expenses?category=BRIBES", nil)
	rec := httptest.NewRecorder()
	newExpenseRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseCreateRequiresWeighbridgeForWeighbridgeCategory(t *testing.T) {
	repo := new(mockExpenseRepository)

	req := httptest.NewRequest(http.MethodPost, "/expenses",
		jsonBody(`{"tripId":"trip-1","category":"WEIGHBRIDGE","amount":40}`))
	rec := httptest.NewRecorder()
	newExpenseRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExpenseCreate(t *testing.T) {
	repo := new(mockExpenseRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.Expense) bool {
		return e.TripID == "trip-1" && e.Category == entity.ExpenseFuel && e.Amount == 120.5
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/expenses",
		jsonBody(`{"tripId":"trip-1","category":"FUEL","amount":120.5}`))
	rec := httptest.NewRecorder()
	newExpenseRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestExpenseCreateRejectsNonPositiveAmount(t *testing.T) {
	repo := new(mockExpenseRepository)

	req := httptest.NewRequest(http.MethodPost, "/expenses",
		jsonBody(`{"tripId":"trip-1","category":"FUEL","amount":0}`))
	rec := httptest.NewRecorder()
	newExpenseRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
