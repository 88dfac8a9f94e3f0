package handlers

import (
	"context"
	"strconv"

	"github.com/hyesong/aroma-api/internal/models"
	"github.com/hyesong/aroma-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const defaultAnalysisLimit = 20

type AnalysisHandler struct {
	analysisService AnalysisServiceInterface
}

func NewAnalysisHandler(analysisService AnalysisServiceInterface) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

func (h *AnalysisHandler) AnalyzeComment(c *drift.Context) {
	var req dto.AnalyzeCommentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("요청 형식이 올바르지 않습니다.")
		return
	}

	if req.Content == "" {
		c.BadRequest("분석할 내용을 입력해 주세요.")
		return
	}

	if req.Source == "" {
		req.Source = models.AnalysisSourceBlog
	}
	if !validAnalysisSource(req.Source) {
		c.BadRequest("source는 blog 또는 review여야 합니다.")
		return
	}

	record, err := h.analysisService.AnalyzeComment(context.Background(), req.Source, req.Content)
	if err != nil {
		c.InternalServerError("분석 결과 저장에 실패했습니다.")
		return
	}

	_ = c.JSON(200, toAnalysisResponse(record))
}

func (h *AnalysisHandler) ListComments(c *drift.Context) {
	source := c.QueryParam("source")
	if !validAnalysisSource(source) {
		c.BadRequest("source는 blog 또는 review여야 합니다.")
		return
	}

	limit := defaultAnalysisLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.BadRequest("limit은 1에서 100 사이여야 합니다.")
			return
		}
		limit = parsed
	}

	records, err := h.analysisService.ListBySource(context.Background(), source, limit)
	if err != nil {
		c.InternalServerError("분석 결과 조회에 실패했습니다.")
		return
	}

	responses := make([]dto.AnalysisResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toAnalysisResponse(&records[i]))
	}

	_ = c.JSON(200, responses)
}

func validAnalysisSource(source string) bool {
	return source == models.AnalysisSourceBlog || source == models.AnalysisSourceReview
}

func toAnalysisResponse(record *models.CommentAnalysis) dto.AnalysisResponse {
	return dto.AnalysisResponse{
		ID:              record.ID,
		Source:          record.Source,
		Content:         record.Content,
		Sentiment:       record.Sentiment,
		Intent:          record.Intent,
		UserType:        record.UserType,
		Tags:            record.Tags,
		ConversionScore: record.ConversionScore,
		CreatedAt:       record.CreatedAt,
	}
}
