package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Client, int, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]*entity.Client), args.Int(1), args.Error(2)
}

func (m *mockClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *mockClientRepository) Create(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) Update(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type noopLogger struct{}

func (noopLogger) Debug(string, logger.Fields)        {}
func (noopLogger) Info(string, logger.Fields)         {}
func (noopLogger) Warn(string, logger.Fields)         {}
func (noopLogger) Error(string, error, logger.Fields) {}
func (noopLogger) WithFields(logger.Fields) logger.Logger {
	return noopLogger{}
}

func newClientRouter(repo outbound.ClientRepository) *mux.Router {
	router := mux.NewRouter()
	NewClientHandler(repo, noopLogger{}).RegisterRoutes(router)
	return router
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func jsonBody(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func TestClientList(t *testing.T) {
	repo := new(mockClientRepository)
	clients := []*entity.Client{{ID: "c1", Name: "Acme"}, {ID: "c2", Name: "Globex"}}
	repo.On("FindAll", mock.Anything, pagination.Pagination{Page: 2, Limit: 10, Query: "a"}).
		Return(clients, 12, nil)

	req := httptest.NewRequest(http.MethodGet, "/clients?page=2&limit=10&q=a", nil)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Meta pagination.Meta  `json:"meta"`
		Data []*entity.Client `json:"data"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 10, Total: 12}, body.Meta)
	assert.Len(t, body.Data, 2)
	repo.AssertExpectations(t)
}

func TestClientListDefaultsPagination(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("FindAll", mock.Anything, pagination.Pagination{Page: 1, Limit: 50}).
		Return([]*entity.Client{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Meta pagination.Meta  `json:"meta"`
		Data []*entity.Client `json:"data"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 50, Total: 0}, body.Meta)
	assert.NotNil(t, body.Data)
	repo.AssertExpectations(t)
}

func TestClientGetNotFound(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, outbound.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/clients/missing", nil)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Client not found", body.Message)
}

func TestClientCreate(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Client) bool {
		return c.Name == "Acme" && c.ID != ""
	})).Return(nil)

	payload := bytes.NewBufferString(`{"name":"Acme","contact":"555-0100"}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", payload)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Client
	decodeBody(t, rec, &created)
	assert.Equal(t, "Acme", created.Name)
	assert.NotEmpty(t, created.ID)
	repo.AssertExpectations(t)
}

func TestClientCreateRequiresName(t *testing.T) {
	repo := new(mockClientRepository)

	payload := bytes.NewBufferString(`{"contact":"555-0100"}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", payload)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientCreateRejectsBadJSON(t *testing.T) {
	repo := new(mockClientRepository)

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(`{`))
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientUpdateAppliesPartialPatch(t *testing.T) {
	repo := new(mockClientRepository)
	contact := "old-contact"
	repo.On("FindByID", mock.Anything, "c1").
		Return(&entity.Client{ID: "c1", Name: "Old", Contact: &contact}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Client) bool {
		// only the name changes, the untouched field survives
		return c.Name == "New" && c.Contact != nil && *c.Contact == "old-contact"
	})).Return(nil)

	payload := bytes.NewBufferString(`{"name":"New"}`)
	req := httptest.NewRequest(http.MethodPatch, "/clients/c1", payload)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestClientUpdateNotFound(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, outbound.ErrNotFound)

	payload := bytes.NewBufferString(`{"name":"New"}`)
	req := httptest.NewRequest(http.MethodPatch, "/clients/missing", payload)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestClientDelete(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("SoftDelete", mock.Anything, "c1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/clients/c1", nil)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Client deleted", body.Message)
}

// Deleting a row that is absent or already deleted produces the same body
// as reading it, so callers cannot probe deletion state.
func TestClientDeleteAlreadyDeleted(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("SoftDelete", mock.Anything, "gone").Return(outbound.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/clients/gone", nil)
	rec := httptest.NewRecorder()
	newClientRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Client not found", body.Message)
}
