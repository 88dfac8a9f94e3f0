package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/models"
	"github.com/hyesong/aroma-api/pkg/dto"
	"github.com/hyesong/aroma-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAnalysisTest(t *testing.T) (*testutil.MockAnalysisService, *AnalysisHandler) {
	t.Helper()
	mockAnalysisService := new(testutil.MockAnalysisService)
	return mockAnalysisService, NewAnalysisHandler(mockAnalysisService)
}

func TestAnalysisHandler_AnalyzeComment(t *testing.T) {
	mockAnalysisService, handler := setupAnalysisTest(t)

	record := &models.CommentAnalysis{
		ID:              uuid.New(),
		Source:          models.AnalysisSourceReview,
		Content:         "라벤더 오일 구매하고 싶어요",
		Sentiment:       "neutral",
		Intent:          "purchase",
		UserType:        "unknown",
		Tags:            []string{"라벤더"},
		ConversionScore: 0.7,
		CreatedAt:       time.Now(),
	}
	mockAnalysisService.On("AnalyzeComment", mock.Anything, models.AnalysisSourceReview, record.Content).
		Return(record, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/analysis/comments", handler.AnalyzeComment)

	body, _ := json.Marshal(dto.AnalyzeCommentRequest{
		Source:  models.AnalysisSourceReview,
		Content: record.Content,
	})
	req := httptest.NewRequest(http.MethodPost, "/analysis/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, record.ID, response.ID)
	assert.Equal(t, "purchase", response.Intent)
	assert.InDelta(t, 0.7, response.ConversionScore, 0.0001)

	mockAnalysisService.AssertExpectations(t)
}

func TestAnalysisHandler_AnalyzeComment_DefaultSource(t *testing.T) {
	mockAnalysisService, handler := setupAnalysisTest(t)

	record := &models.CommentAnalysis{
		ID:        uuid.New(),
		Source:    models.AnalysisSourceBlog,
		Content:   "좋아요 감사합니다",
		Sentiment: "positive",
		Intent:    "general",
		UserType:  "unknown",
		CreatedAt: time.Now(),
	}
	mockAnalysisService.On("AnalyzeComment", mock.Anything, models.AnalysisSourceBlog, record.Content).
		Return(record, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/analysis/comments", handler.AnalyzeComment)

	// Source omitted entirely: the comment is treated as a blog comment.
	body, _ := json.Marshal(dto.AnalyzeCommentRequest{Content: record.Content})
	req := httptest.NewRequest(http.MethodPost, "/analysis/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.AnalysisSourceBlog, response.Source)

	mockAnalysisService.AssertExpectations(t)
}

func TestAnalysisHandler_AnalyzeComment_EmptyContent(t *testing.T) {
	_, handler := setupAnalysisTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/analysis/comments", handler.AnalyzeComment)

	body, _ := json.Marshal(dto.AnalyzeCommentRequest{Source: models.AnalysisSourceBlog})
	req := httptest.NewRequest(http.MethodPost, "/analysis/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "분석할 내용을 입력해 주세요")
}

func TestAnalysisHandler_AnalyzeComment_InvalidSource(t *testing.T) {
	_, handler := setupAnalysisTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/analysis/comments", handler.AnalyzeComment)

	body, _ := json.Marshal(dto.AnalyzeCommentRequest{Source: "instagram", Content: "좋아요"})
	req := httptest.NewRequest(http.MethodPost, "/analysis/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisHandler_ListComments(t *testing.T) {
	mockAnalysisService, handler := setupAnalysisTest(t)

	records := []models.CommentAnalysis{
		{ID: uuid.New(), Source: models.AnalysisSourceReview, Content: "구매 예정", ConversionScore: 0.85},
		{ID: uuid.New(), Source: models.AnalysisSourceReview, Content: "배송 문의", ConversionScore: 0.4},
	}
	mockAnalysisService.On("ListBySource", mock.Anything, models.AnalysisSourceReview, 20).
		Return(records, nil)

	app := drift.New()
	app.Get("/analysis/comments", handler.ListComments)

	req := httptest.NewRequest(http.MethodGet, "/analysis/comments?source=review", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, records[0].ID, response[0].ID)

	mockAnalysisService.AssertExpectations(t)
}

func TestAnalysisHandler_ListComments_CustomLimit(t *testing.T) {
	mockAnalysisService, handler := setupAnalysisTest(t)

	mockAnalysisService.On("ListBySource", mock.Anything, models.AnalysisSourceBlog, 5).
		Return([]models.CommentAnalysis{}, nil)

	app := drift.New()
	app.Get("/analysis/comments", handler.ListComments)

	req := httptest.NewRequest(http.MethodGet, "/analysis/comments?source=blog&limit=5", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockAnalysisService.AssertExpectations(t)
}

func TestAnalysisHandler_ListComments_InvalidLimit(t *testing.T) {
	_, handler := setupAnalysisTest(t)

	app := drift.New()
	app.Get("/analysis/comments", handler.ListComments)

	req := httptest.NewRequest(http.MethodGet, "/analysis/comments?source=blog&limit=500", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisHandler_ListComments_MissingSource(t *testing.T) {
	_, handler := setupAnalysisTest(t)

	app := drift.New()
	app.Get("/analysis/comments", handler.ListComments)

	req := httptest.NewRequest(http.MethodGet, "/analysis/comments", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
