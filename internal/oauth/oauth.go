// oauth — браузерный логин через внешних OAuth-провайдеров.
//
// Шлюз не владеет механикой handshake: AuthCodeURL/Exchange делает
// golang.org/x/oauth2, наша часть — забрать профиль userinfo-запросом и
// свернуть его в models.OAuthUser для auth-сервиса.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
)

const (
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email,picture"
)

// Provider — один настроенный OAuth-провайдер.
type Provider struct {
	name        string
	cfg         *oauth2.Config
	userInfoURL string
}

// NewGoogle — провайдер Google (scope: email, profile).
func NewGoogle(cfg config.OAuthConfig) *Provider {
	return &Provider{
		name: models.ProviderGoogle,
		cfg: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// NewFacebook — провайдер Facebook (scope: email, public_profile).
func NewFacebook(cfg config.OAuthConfig) *Provider {
	return &Provider{
		name: models.ProviderFacebook,
		cfg: &oauth2.Config{
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			RedirectURL:  cfg.FacebookRedirectURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
		userInfoURL: facebookUserInfoURL,
	}
}

// Providers собирает включённые провайдеры (с заполненным client id).
func Providers(cfg config.OAuthConfig) map[string]*Provider {
	out := make(map[string]*Provider, 2)

	if cfg.GoogleClientID != "" {
		out[models.ProviderGoogle] = NewGoogle(cfg)
	}
	if cfg.FacebookClientID != "" {
		out[models.ProviderFacebook] = NewFacebook(cfg)
	}

	return out
}

func (p *Provider) Name() string { return p.name }

// AuthURL — адрес страницы согласия провайдера; state обязан проверяться
// на обратном редиректе.
func (p *Provider) AuthURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// Exchange меняет authorization code на токен провайдера.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	const op = "oauth.Exchange"

	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, p.name, err)
	}

	return tok, nil
}

// FetchUser запрашивает userinfo и сводит ответ провайдера к OAuthUser.
func (p *Provider) FetchUser(ctx context.Context, tok *oauth2.Token) (models.OAuthUser, error) {
	const op = "oauth.FetchUser"

	resp, err := p.cfg.Client(ctx, tok).Get(p.userInfoURL)
	if err != nil {
		return models.OAuthUser{}, fmt.Errorf("%s: %s: %w", op, p.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.OAuthUser{}, fmt.Errorf("%s: %s: userinfo status %d", op, p.name, resp.StatusCode)
	}

	if p.name == models.ProviderFacebook {
		return decodeFacebookUser(resp)
	}

	return decodeGoogleUser(resp)
}

func decodeGoogleUser(resp *http.Response) (models.OAuthUser, error) {
	var info struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.OAuthUser{}, fmt.Errorf("oauth.decodeGoogleUser: %w", err)
	}

	return models.OAuthUser{
		ID:          info.ID,
		DisplayName: info.Name,
		Email:       info.Email,
		Picture:     info.Picture,
		Provider:    models.ProviderGoogle,
	}, nil
}

func decodeFacebookUser(resp *http.Response) (models.OAuthUser, error) {
	var info struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.OAuthUser{}, fmt.Errorf("oauth.decodeFacebookUser: %w", err)
	}

	return models.OAuthUser{
		ID:          info.ID,
		DisplayName: info.Name,
		Email:       info.Email,
		Picture:     info.Picture.Data.URL,
		Provider:    models.ProviderFacebook,
	}, nil
}
