// service — сессионная оркестрация шлюза.
//
// Здесь живёт склейка OAuth-логина, ротации refresh-токена и логаута:
// хендлеры разбирают HTTP, сервис решает, кто подписывает токены
// (auth-сервис или шлюз) и когда обращаться к апстриму.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/tokens"
)

type Service struct {
	log    *slog.Logger
	cl     *clients.Clients
	tokens *tokens.Manager
	mode   string
	prod   bool
}

func New(cfg *config.Config, cl *clients.Clients, tm *tokens.Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		log:    log,
		cl:     cl,
		tokens: tm,
		mode:   cfg.JWT.Mode,
		prod:   cfg.IsProd(),
	}
}

// Tokens — менеджер токенов шлюза (нужен middleware для проверки access).
func (s *Service) Tokens() *tokens.Manager { return s.tokens }

// Profile — профиль текущего пользователя из auth-сервиса.
func (s *Service) Profile(ctx context.Context, userLoginID string) (*models.User, error) {
	user, err := s.cl.Auth.Profile(ctx, userLoginID)
	if err != nil {
		return nil, fmt.Errorf("service.Profile: %w", err)
	}

	return user, nil
}
