// authclient — типизированный клиент auth-сервиса.
//
// Сервис владеет учётками, привязкой OAuth-аккаунтов, хранением и ротацией
// refresh-токенов и отзывом по jti; шлюз только транслирует вызовы.
package authclient

import (
	"context"
	"fmt"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/httpc"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
)

type Client struct {
	http *httpc.Client
}

func New(http *httpc.Client) *Client {
	return &Client{http: http}
}

// LoginRequest — профиль провайдера плюс IP клиента (для аудита сессий).
type LoginRequest struct {
	User      models.OAuthUser `json:"user"`
	IPAddress string           `json:"ipAddress"`
}

// LoginResponse — ответ логина/рефреша. В режиме backend заполнены оба
// токена; в режиме local — только userLoginId, подписывает шлюз.
type LoginResponse struct {
	UserLoginID  string `json:"userLoginId,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshRequest — расшифрованный payload refresh-токена плюс IP.
// Шлюз валидирует подпись и срок до отправки; сервис проверяет, что токен
// всё ещё активен (не ротирован и не отозван).
type RefreshRequest struct {
	UserLoginID string `json:"userLoginId"`
	JTI         string `json:"jti"`
	IssuedAt    int64  `json:"iat,omitempty"`
	ExpiresAt   int64  `json:"exp,omitempty"`
	IPAddress   string `json:"ipAddress"`
}

// LogoutRequest — отзыв текущего jti либо всех токенов пользователя.
type LogoutRequest struct {
	UserLoginID string `json:"userLoginId"`
	JTI         string `json:"jti"`
	AllDevices  bool   `json:"allDevices"`
}

func (c *Client) Login(ctx context.Context, user models.OAuthUser, clientIP string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.http.Post(ctx, "/internal/oauth/login", LoginRequest{User: user, IPAddress: clientIP}, &out); err != nil {
		return nil, fmt.Errorf("authclient.Login: %w", err)
	}

	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.http.Post(ctx, "/internal/oauth/refresh", req, &out); err != nil {
		return nil, fmt.Errorf("authclient.Refresh: %w", err)
	}

	return &out, nil
}

func (c *Client) Logout(ctx context.Context, userLoginID, jti string, allDevices bool) error {
	req := LogoutRequest{UserLoginID: userLoginID, JTI: jti, AllDevices: allDevices}
	if err := c.http.Post(ctx, "/internal/logout", req, nil); err != nil {
		return fmt.Errorf("authclient.Logout: %w", err)
	}

	return nil
}

func (c *Client) Profile(ctx context.Context, userLoginID string) (*models.User, error) {
	var out models.User
	if err := c.http.Get(ctx, "/users/"+userLoginID+"/profile", nil, &out); err != nil {
		return nil, fmt.Errorf("authclient.Profile: %w", err)
	}

	return &out, nil
}

// Health — проба живости; ответ — произвольная JSON-строка сервиса.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out string
	if err := c.http.Get(ctx, "/health", nil, &out); err != nil {
		return "", fmt.Errorf("authclient.Health: %w", err)
	}

	return out, nil
}

func (c *Client) Close() { c.http.Close() }
