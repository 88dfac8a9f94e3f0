package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/middleware"
	"github.com/hyesong/aroma-api/internal/models"
	"github.com/hyesong/aroma-api/pkg/dto"
	"github.com/hyesong/aroma-api/tests/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserTest(t *testing.T) (*testutil.MockUserService, *testutil.MockTokenService, *UserHandler) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	mockTokenService := new(testutil.MockTokenService)
	handler := NewUserHandler(mockUserService, mockTokenService)
	return mockUserService, mockTokenService, handler
}

func withUser(userID uuid.UUID) drift.HandlerFunc {
	return func(c *drift.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func TestUserHandler_GetMe(t *testing.T) {
	mockUserService, _, handler := setupUserTest(t)

	userID := uuid.New()
	user := &models.User{
		ID:           userID,
		Email:        "test@example.com",
		Name:         "사용자",
		Provider:     "naver",
		Role:         models.RoleUser,
		CustomerType: models.CustomerTypeB2C,
	}
	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	app := drift.New()
	app.Use(withUser(userID))
	app.Get("/users/me", handler.GetMe)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, userID, response.ID)
	assert.Equal(t, "test@example.com", response.Email)
	assert.Equal(t, models.CustomerTypeB2C, response.CustomerType)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_GetMe_NotAuthenticated(t *testing.T) {
	_, _, handler := setupUserTest(t)

	app := drift.New()
	app.Get("/users/me", handler.GetMe)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_GetMe_NotFound(t *testing.T) {
	mockUserService, _, handler := setupUserTest(t)

	userID := uuid.New()
	mockUserService.On("GetByID", mock.Anything, userID).Return(nil, pgx.ErrNoRows)

	app := drift.New()
	app.Use(withUser(userID))
	app.Get("/users/me", handler.GetMe)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_UpdateMe(t *testing.T) {
	mockUserService, _, handler := setupUserTest(t)

	userID := uuid.New()
	updated := &models.User{
		ID:           userID,
		Email:        "test@example.com",
		Name:         "새 이름",
		Provider:     "naver",
		Role:         models.RoleUser,
		CustomerType: models.CustomerTypeB2C,
	}
	mockUserService.On("Update", mock.Anything, userID, "새 이름").Return(updated, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(withUser(userID))
	app.Patch("/users/me", handler.UpdateMe)

	body, _ := json.Marshal(dto.UpdateUserRequest{Name: "새 이름"})
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "새 이름", response.Name)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_UpdateMe_EmptyName(t *testing.T) {
	_, _, handler := setupUserTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(withUser(uuid.New()))
	app.Patch("/users/me", handler.UpdateMe)

	body, _ := json.Marshal(dto.UpdateUserRequest{Name: ""})
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "이름을 입력해 주세요")
}

func TestUserHandler_DeactivateMe(t *testing.T) {
	mockUserService, mockTokenService, handler := setupUserTest(t)

	userID := uuid.New()
	mockUserService.On("Deactivate", mock.Anything, userID).Return(nil)
	mockTokenService.On("RevokeAllUserTokens", mock.Anything, userID).Return(nil)

	app := drift.New()
	app.Use(withUser(userID))
	app.Delete("/users/me", handler.DeactivateMe)

	req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "탈퇴 처리되었습니다")

	mockUserService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestUserHandler_DeactivateMe_AlreadyDeactivated(t *testing.T) {
	mockUserService, _, handler := setupUserTest(t)

	userID := uuid.New()
	mockUserService.On("Deactivate", mock.Anything, userID).Return(pgx.ErrNoRows)

	app := drift.New()
	app.Use(withUser(userID))
	app.Delete("/users/me", handler.DeactivateMe)

	req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
