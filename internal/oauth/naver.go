package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hyesong/aroma-api/internal/config"
	"golang.org/x/oauth2"
)

// x/oauth2 ships no Naver endpoint package, so it is declared here.
var naverEndpoint = oauth2.Endpoint{
	AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
	TokenURL: "https://nid.naver.com/oauth2.0/token",
}

type NaverProvider struct {
	config *oauth2.Config
}

func NewNaverProvider(cfg config.OAuthConfig) *NaverProvider {
	return &NaverProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     naverEndpoint,
		},
	}
}

func (p *NaverProvider) Name() string {
	return "naver"
}

func (p *NaverProvider) GetConsentURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *NaverProvider) ExchangeCode(ctx context.Context, code string) (*UserInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := p.config.Client(ctx, token)

	resp, err := client.Get("https://openapi.naver.com/v1/nid/me")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver api returned status %d", resp.StatusCode)
	}

	// Naver wraps the profile in a resultcode/response envelope
	var nvUser struct {
		ResultCode string `json:"resultcode"`
		Message    string `json:"message"`
		Response   struct {
			ID           string `json:"id"`
			Email        string `json:"email"`
			Name         string `json:"name"`
			Nickname     string `json:"nickname"`
			ProfileImage string `json:"profile_image"`
		} `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&nvUser); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	if nvUser.ResultCode != "00" {
		return nil, fmt.Errorf("naver api error: %s", nvUser.Message)
	}

	if nvUser.Response.Email == "" {
		return nil, fmt.Errorf("no email found")
	}

	name := nvUser.Response.Name
	if name == "" {
		name = nvUser.Response.Nickname
	}

	return &UserInfo{
		Email:     nvUser.Response.Email,
		Name:      name,
		AvatarURL: nvUser.Response.ProfileImage,
		ID:        nvUser.Response.ID,
		Provider:  "naver",
	}, nil
}
