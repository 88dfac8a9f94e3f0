package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hyesong/aroma-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/kakao"
)

type KakaoProvider struct {
	config *oauth2.Config
}

func NewKakaoProvider(cfg config.OAuthConfig) *KakaoProvider {
	return &KakaoProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"account_email", "profile_nickname", "profile_image"},
			Endpoint:     kakao.Endpoint,
		},
	}
}

func (p *KakaoProvider) Name() string {
	return "kakao"
}

func (p *KakaoProvider) GetConsentURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *KakaoProvider) ExchangeCode(ctx context.Context, code string) (*UserInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := p.config.Client(ctx, token)

	resp, err := client.Get("https://kapi.kakao.com/v2/user/me")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao api returned status %d", resp.StatusCode)
	}

	// Kakao's numeric id plus the nested kakao_account/profile blocks
	var kkUser struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Email   string `json:"email"`
			Profile struct {
				Nickname        string `json:"nickname"`
				ProfileImageURL string `json:"profile_image_url"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&kkUser); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	if kkUser.KakaoAccount.Email == "" {
		return nil, fmt.Errorf("no email found")
	}

	return &UserInfo{
		Email:     kkUser.KakaoAccount.Email,
		Name:      kkUser.KakaoAccount.Profile.Nickname,
		AvatarURL: kkUser.KakaoAccount.Profile.ProfileImageURL,
		ID:        fmt.Sprintf("%d", kkUser.ID),
		Provider:  "kakao",
	}, nil
}
