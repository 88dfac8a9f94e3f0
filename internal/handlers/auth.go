package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/config"
	"github.com/hyesong/aroma-api/internal/middleware"
	"github.com/hyesong/aroma-api/internal/oauth"
	"github.com/hyesong/aroma-api/internal/services"
	"github.com/hyesong/aroma-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	cfg          *config.Config
	providers    map[string]oauth.Provider
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
	stateService StateServiceInterface
	authCodes    sync.Map
}

// authCodeData is a one-time app code handed to the frontend after the OAuth
// callback, exchanged for tokens within 30 seconds.
type authCodeData struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
	stateService StateServiceInterface,
) *AuthHandler {
	h := &AuthHandler{
		cfg:          cfg,
		providers:    make(map[string]oauth.Provider),
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
		stateService: stateService,
	}

	if cfg.Naver.ClientID != "" {
		h.providers["naver"] = oauth.NewNaverProvider(cfg.Naver)
	}
	if cfg.Google.ClientID != "" {
		h.providers["google"] = oauth.NewGoogleProvider(cfg.Google)
	}
	if cfg.Kakao.ClientID != "" {
		h.providers["kakao"] = oauth.NewKakaoProvider(cfg.Kakao)
	}

	go h.cleanupAuthCodes()

	return h
}

func (h *AuthHandler) cleanupAuthCodes() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.authCodes.Range(func(key, value interface{}) bool {
			if acd, ok := value.(authCodeData); ok && now.After(acd.expiresAt) {
				h.authCodes.Delete(key)
			}
			return true
		})
	}
}

func (h *AuthHandler) GetConsentURL(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		c.BadRequest("지원하지 않는 로그인 방식입니다.")
		return
	}

	redirectTarget := c.QueryParam("redirect")
	if redirectTarget == "" {
		redirectTarget = "/"
	}

	state, err := h.stateService.Issue(context.Background(), provider, redirectTarget)
	if err != nil {
		c.InternalServerError("로그인 요청 처리에 실패했습니다.")
		return
	}

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: p.GetConsentURL(state),
	})
}

func (h *AuthHandler) Callback(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		h.redirectWithError(c, "지원하지 않는 로그인 방식입니다.")
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		h.redirectWithError(c, "state 파라미터가 없습니다.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Single use: a replayed or forged state fails here, before any
	// provider call is made.
	redirectTarget, err := h.stateService.Consume(ctx, state, provider)
	if err != nil {
		h.redirectWithError(c, "유효하지 않거나 만료된 로그인 요청입니다.")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		h.redirectWithError(c, "인증 코드가 없습니다.")
		return
	}

	userInfo, err := p.ExchangeCode(ctx, code)
	if err != nil {
		h.redirectWithError(c, "소셜 로그인에 실패했습니다.")
		return
	}

	user, err := h.userService.LinkFromOAuth(ctx, userInfo)
	if err != nil {
		h.redirectWithError(c, "로그인 처리 중 오류가 발생했습니다.")
		return
	}

	authCode, err := oauth.GenerateState()
	if err != nil {
		h.redirectWithError(c, "로그인 처리 중 오류가 발생했습니다.")
		return
	}

	h.authCodes.Store(authCode, authCodeData{
		userID:    user.ID,
		expiresAt: time.Now().Add(30 * time.Second),
	})

	redirectURL := fmt.Sprintf("%s?code=%s&redirect=%s",
		h.cfg.FrontendCallbackURL,
		url.QueryEscape(authCode),
		url.QueryEscape(redirectTarget),
	)

	c.Redirect(http.StatusFound, redirectURL)
}

func (h *AuthHandler) ExchangeCode(c *drift.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("요청 형식이 올바르지 않습니다.")
		return
	}

	if req.Code == "" {
		c.BadRequest("code를 입력해 주세요.")
		return
	}

	acd, ok := h.authCodes.LoadAndDelete(req.Code)
	if !ok {
		c.Unauthorized("유효하지 않거나 만료된 코드입니다.")
		return
	}

	codeData, ok := acd.(authCodeData)
	if !ok || time.Now().After(codeData.expiresAt) {
		c.Unauthorized("유효하지 않거나 만료된 코드입니다.")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, codeData.userID)
	if err != nil {
		c.Unauthorized("사용자를 찾을 수 없습니다.")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		c.InternalServerError("토큰 발급에 실패했습니다.")
		return
	}

	tokenHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		c.InternalServerError("토큰 발급에 실패했습니다.")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("요청 형식이 올바르지 않습니다.")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token을 입력해 주세요.")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("유효하지 않은 리프레시 토큰입니다.")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	ctx := context.Background()

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("세션이 만료되었습니다. 다시 로그인해 주세요.")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("사용자를 찾을 수 없습니다.")
		return
	}

	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		c.InternalServerError("토큰 갱신에 실패했습니다.")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		c.InternalServerError("토큰 갱신에 실패했습니다.")
		return
	}

	newTokenHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, newTokenHash, expiresAt); err != nil {
		c.InternalServerError("토큰 갱신에 실패했습니다.")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("요청 형식이 올바르지 않습니다.")
		return
	}

	if req.RefreshToken != "" {
		tokenHash := services.HashToken(req.RefreshToken)
		_ = h.tokenService.RevokeRefreshToken(context.Background(), tokenHash)
	}

	_ = c.JSON(200, map[string]string{"message": "로그아웃되었습니다."})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("로그인이 필요합니다.")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(context.Background(), userID); err != nil {
		c.InternalServerError("로그아웃 처리에 실패했습니다.")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "모든 기기에서 로그아웃되었습니다."})
}

func (h *AuthHandler) redirectWithError(c *drift.Context, errMsg string) {
	redirectURL := fmt.Sprintf("%s?error=%s",
		h.cfg.LoginErrorURL,
		url.QueryEscape(errMsg),
	)
	c.Redirect(http.StatusFound, redirectURL)
}
