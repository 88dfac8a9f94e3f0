package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/middleware"
	"github.com/hyesong/aroma-api/pkg/dto"
	"github.com/jackc/pgx/v5"
	"github.com/m1z23r/drift/pkg/drift"
)

type ChatbotHandler struct {
	chatService ChatServiceInterface
}

func NewChatbotHandler(chatService ChatServiceInterface) *ChatbotHandler {
	return &ChatbotHandler{chatService: chatService}
}

// StartSession works for both anonymous visitors and logged-in users; a
// bearer token just attaches the user to the session.
func (h *ChatbotHandler) StartSession(c *drift.Context) {
	var userID *uuid.UUID
	if id := middleware.GetUserID(c); id != uuid.Nil {
		userID = &id
	}

	session, err := h.chatService.StartSession(context.Background(), userID)
	if err != nil {
		c.InternalServerError("상담 세션 생성에 실패했습니다.")
		return
	}

	_ = c.JSON(200, dto.StartSessionResponse{
		SessionID: session.ID,
	})
}

func (h *ChatbotHandler) PostMessage(c *drift.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.BadRequest("세션 ID가 올바르지 않습니다.")
		return
	}

	var req dto.ChatMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("요청 형식이 올바르지 않습니다.")
		return
	}

	if req.Message == "" {
		c.BadRequest("메시지를 입력해 주세요.")
		return
	}

	message, session, err := h.chatService.RecordMessage(context.Background(), sessionID, req.Message)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.NotFound("상담 세션을 찾을 수 없습니다.")
			return
		}
		c.InternalServerError("메시지 처리에 실패했습니다.")
		return
	}

	_ = c.JSON(200, dto.ChatMessageResponse{
		Reply:            message.Reply,
		Sentiment:        message.Sentiment,
		Intent:           message.Intent,
		UserType:         message.UserType,
		Tags:             message.Tags,
		ConversionScore:  message.ConversionScore,
		MessageCount:     session.MessageCount,
		DetectedUserType: session.DetectedUserType,
		TypeConfidence:   session.TypeConfidence,
	})
}
