package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/middleware"
	"github.com/hyesong/aroma-api/internal/models"
	"github.com/hyesong/aroma-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
}

func NewUserHandler(userService UserServiceInterface, tokenService TokenServiceInterface) *UserHandler {
	return &UserHandler{userService: userService, tokenService: tokenService}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("로그인이 필요합니다.")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.NotFound("사용자를 찾을 수 없습니다.")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("로그인이 필요합니다.")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("요청 형식이 올바르지 않습니다.")
		return
	}

	if req.Name == "" {
		c.BadRequest("이름을 입력해 주세요.")
		return
	}

	user, err := h.userService.Update(context.Background(), userID, req.Name)
	if err != nil {
		c.InternalServerError("회원 정보 수정에 실패했습니다.")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

// DeactivateMe soft-deletes the account and revokes every session. The row
// is kept so a later social login reactivates it.
func (h *UserHandler) DeactivateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("로그인이 필요합니다.")
		return
	}

	ctx := context.Background()

	if err := h.userService.Deactivate(ctx, userID); err != nil {
		c.NotFound("사용자를 찾을 수 없습니다.")
		return
	}

	_ = h.tokenService.RevokeAllUserTokens(ctx, userID)

	_ = c.JSON(200, map[string]string{"message": "탈퇴 처리되었습니다."})
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		AvatarURL:    user.AvatarURL,
		Provider:     user.Provider,
		Role:         user.Role,
		CustomerType: user.CustomerType,
		LastLoginAt:  user.LastLoginAt,
	}
}
