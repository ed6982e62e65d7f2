package clients

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"signdesk/internal/dto"
	"signdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockClientManager struct {
	mock.Mock
}

func (m *mockClientManager) CreateClient(ctx context.Context, requester *models.User, client *models.Client) (*models.Client, error) {
	args := m.Called(ctx, requester, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *mockClientManager) ListClients(ctx context.Context, requester *models.User) ([]*models.Client, error) {
	args := m.Called(ctx, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Client), args.Error(1)
}

func (m *mockClientManager) ClientByID(ctx context.Context, requester *models.User, clientID string) (*models.Client, error) {
	args := m.Called(ctx, requester, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func adminUser() *models.User {
	return &models.User{ID: "admin1", Email: "admin@example.com", Role: models.RoleAdmin}
}

func withUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), models.UserContextKey, user)
	return r.WithContext(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdd_Success(t *testing.T) {
	t.Parallel()

	body := `{"name": "Alice", "email": "alice@example.com", "company": "ACME"}`
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	req = withUser(req, adminUser())
	w := httptest.NewRecorder()

	company := "ACME"

	cm := new(mockClientManager)
	cm.On("CreateClient", mock.Anything, adminUser(), mock.MatchedBy(func(c *models.Client) bool {
		return c.Name == "Alice" && c.Email == "alice@example.com" && c.Company != nil && *c.Company == "ACME"
	})).Return(&models.Client{
		ID:        "client1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Company:   &company,
		CreatedAt: time.Now(),
	}, nil)

	Add(req.Context(), discardLogger(), w, req, cm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed map[string]dto.ClientResponse
	err := json.NewDecoder(resp.Body).Decode(&parsed)
	assert.NoError(t, err)
	assert.Equal(t, "client1", parsed["data"].ID)
	cm.AssertExpectations(t)
}

func TestAdd_InvalidJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(`{invalid}`))
	req = withUser(req, adminUser())
	w := httptest.NewRecorder()

	cm := new(mockClientManager)

	Add(req.Context(), discardLogger(), w, req, cm)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	cm.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdd_Forbidden(t *testing.T) {
	t.Parallel()

	regular := &models.User{ID: "user1", Role: models.RoleUser}

	body := `{"name": "Alice", "email": "alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	req = withUser(req, regular)
	w := httptest.NewRecorder()

	cm := new(mockClientManager)
	cm.On("CreateClient", mock.Anything, regular, mock.Anything).Return(nil, models.ErrForbidden)

	Add(req.Context(), discardLogger(), w, req, cm)

	assert.Equal(t, http.StatusForbidden, w.Code)
	cm.AssertExpectations(t)
}

func TestGet_Success(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req = withUser(req, adminUser())
	w := httptest.NewRecorder()

	cm := new(mockClientManager)
	cm.On("ListClients", mock.Anything, adminUser()).Return([]*models.Client{
		{ID: "client1", Name: "Alice", Email: "alice@example.com"},
		{ID: "client2", Name: "Bob", Email: "bob@example.com"},
	}, nil)

	Get(req.Context(), discardLogger(), w, req, cm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed map[string]map[string][]dto.ClientResponse
	err := json.NewDecoder(resp.Body).Decode(&parsed)
	assert.NoError(t, err)
	assert.Len(t, parsed["data"]["clients"], 2)
	cm.AssertExpectations(t)
}

func TestGet_NoUserInContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	w := httptest.NewRecorder()

	cm := new(mockClientManager)

	Get(req.Context(), discardLogger(), w, req, cm)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cm.AssertNotCalled(t, "ListClients", mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/clients/missing", nil)
	req = withUser(req, adminUser())
	w := httptest.NewRecorder()

	cm := new(mockClientManager)
	cm.On("ClientByID", mock.Anything, adminUser(), "missing").Return(nil, models.ErrClientNotFound)

	GetByID(req.Context(), discardLogger(), w, req, "missing", cm)

	assert.Equal(t, http.StatusNotFound, w.Code)
	cm.AssertExpectations(t)
}
