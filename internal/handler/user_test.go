package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoren/drivetrack/internal/domain"
	"github.com/mkoren/drivetrack/internal/handler"
)

// mockUserServicer is a test double for handler.UserServicer.
type mockUserServicer struct {
	register func(ctx context.Context, firstName, lastName, email, password string) (domain.User, error)
	login    func(ctx context.Context, email, password string) (string, error)
	list     func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserServicer) Register(ctx context.Context, firstName, lastName, email, password string) (domain.User, error) {
	return m.register(ctx, firstName, lastName, email, password)
}
func (m *mockUserServicer) Login(ctx context.Context, email, password string) (string, error) {
	return m.login(ctx, email, password)
}
func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

func newUserHTTPHandler(svc handler.UserServicer) http.Handler {
	return newTestHandler(handler.NewServer(svc, nil, nil, nil))
}

func userFixture() domain.User {
	return domain.User{
		ID:           5,
		FirstName:    "Maja",
		LastName:     "Koren",
		Email:        "maja@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// ---- POST /users/register --------------------------------------------------

func TestRegisterUser_201(t *testing.T) {
	fixture := userFixture()
	svc := &mockUserServicer{
		register: func(_ context.Context, firstName, lastName, email, password string) (domain.User, error) {
			assert.Equal(t, "Maja", firstName)
			assert.Equal(t, "maja@example.com", email)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"firstName": "Maja",
		"lastName":  "Koren",
		"email":     "maja@example.com",
		"password":  "hunter22",
	})
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newUserHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	// The password hash must never appear in a response.
	assert.NotContains(t, rec.Body.String(), "$2a$")

	var user domain.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, fixture.ID, user.ID)
	assert.Equal(t, fixture.Email, user.Email)
}

func TestRegisterUser_422_Validation(t *testing.T) {
	svc := &mockUserServicer{
		register: func(_ context.Context, _, _, _, _ string) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: email is invalid", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"firstName": "Maja",
		"lastName":  "Koren",
		"email":     "not-an-email",
		"password":  "hunter22",
	})
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	rec := httptest.NewRecorder()

	newUserHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeErr(t, rec).Error.Code)
}

func TestRegisterUser_409_DuplicateEmail(t *testing.T) {
	svc := &mockUserServicer{
		register: func(_ context.Context, _, _, _, _ string) (domain.User, error) {
			return domain.User{}, fmt.Errorf("service.UserService.Register: %w", domain.ErrConflict)
		},
	}

	body := jsonBody(t, map[string]any{
		"firstName": "Maja",
		"lastName":  "Koren",
		"email":     "maja@example.com",
		"password":  "hunter22",
	})
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	rec := httptest.NewRecorder()

	newUserHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeErr(t, rec).Error.Code)
}

// ---- POST /users/login -----------------------------------------------------

func TestLoginUser_200(t *testing.T) {
	svc := &mockUserServicer{
		login: func(_ context.Context, email, password string) (string, error) {
			assert.Equal(t, "maja@example.com", email)
			assert.Equal(t, "hunter22", password)
			return "signed.jwt.token", nil
		},
	}

	body := jsonBody(t, map[string]any{"email": "maja@example.com", "password": "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", body)
	rec := httptest.NewRecorder()

	newUserHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

func TestLoginUser_401_BadCredentials(t *testing.T) {
	svc := &mockUserServicer{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
		},
	}

	body := jsonBody(t, map[string]any{"email": "maja@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", body)
	rec := httptest.NewRecorder()

	newUserHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeErr(t, rec).Error.Code)
}

// ---- GET /users ------------------------------------------------------------

func TestListUsers_200(t *testing.T) {
	svc := &mockUserServicer{
		list: func(_ context.Context) ([]domain.User, error) {
			return []domain.User{userFixture()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	rec := httptest.NewRecorder()

	newUserHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2a$")

	var users []domain.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	assert.Len(t, users, 1)
}
