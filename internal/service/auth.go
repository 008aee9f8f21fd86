package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/authclient"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
	logctx "github.com/pribylovaa/vocab-trainer-gateway/internal/pkg/log"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/tokens"
)

// HandleOAuthLogin завершает браузерный логин: регистрирует/находит учётку
// в auth-сервисе и возвращает пару токенов.
//
// В режиме backend пару целиком выпускает auth-сервис; в режиме local он
// возвращает только userLoginId, подписывает шлюз.
func (s *Service) HandleOAuthLogin(ctx context.Context, user models.OAuthUser, clientIP string) (*models.TokenPair, error) {
	const op = "service.HandleOAuthLogin"

	resp, err := s.cl.Auth.Login(ctx, user, clientIP)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.buildPair(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// HandleRefreshToken ротирует пару по refresh-токену из куки.
//
// Подпись и срок проверяются локально ДО похода в auth-сервис: битый или
// просроченный токен апстрим не видит. Любой сбой на этом пути (в том числе
// отказ апстрима) схлопывается в unauthorized, чтобы не подсказывать,
// на каком шаге рефреш отклонён.
func (s *Service) HandleRefreshToken(ctx context.Context, rawRefresh, clientIP string) (*models.TokenPair, error) {
	const op = "service.HandleRefreshToken"

	claims, err := s.tokens.VerifyRefresh(rawRefresh)
	if err != nil {
		logctx.From(ctx).Warn("refresh_token_rejected", slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, apierrors.E(apierrors.KindUnauthorized, "invalid refresh token"))
	}

	resp, err := s.cl.Auth.Refresh(ctx, authclient.RefreshRequest{
		UserLoginID: claims.UserLoginID,
		JTI:         claims.ID,
		IssuedAt:    claims.IssuedAt.Unix(),
		ExpiresAt:   claims.ExpiresAt.Unix(),
		IPAddress:   clientIP,
	})
	if err != nil {
		logctx.From(ctx).Warn("refresh_upstream_rejected", slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, apierrors.E(apierrors.KindUnauthorized, "refresh rejected"))
	}

	pair, err := s.buildPair(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// HandleLogout отзывает токены пользователя в auth-сервисе.
//
// Идентичность — claims access-токена (маршрут под AuthJWT), НЕ кука:
// отзыв обязан дойти до апстрима даже без refresh-куки, иначе
// logout-all-devices молча ничего не отзывает. jti refresh-токена
// прикладывается как уточнение, когда кука читается и принадлежит тому же
// пользователю. Кука чистится в хендлере безусловно, поэтому отказ
// апстрима здесь только логируется.
func (s *Service) HandleLogout(ctx context.Context, claims *tokens.Claims, rawRefresh string, allDevices bool) {
	var jti string
	if refresh, err := s.tokens.VerifyRefresh(rawRefresh); err == nil && refresh.UserLoginID == claims.UserLoginID {
		jti = refresh.ID
	}

	if err := s.cl.Auth.Logout(ctx, claims.UserLoginID, jti, allDevices); err != nil {
		logctx.From(ctx).Warn("logout_upstream_failed", slog.String("err", err.Error()))
	}
}

// buildPair собирает итоговую пару по ответу auth-сервиса с учётом режима.
func (s *Service) buildPair(resp *authclient.LoginResponse) (*models.TokenPair, error) {
	const op = "service.buildPair"

	if s.mode == config.TokenModeBackend {
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			return nil, fmt.Errorf("%s: %w", op,
				apierrors.E(apierrors.KindInternal, "auth service returned incomplete token pair"))
		}

		return &models.TokenPair{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
		}, nil
	}

	if resp.UserLoginID == "" {
		return nil, fmt.Errorf("%s: %w", op,
			apierrors.E(apierrors.KindInternal, "auth service returned empty userLoginId"))
	}

	now := time.Now()

	access, err := s.tokens.IssueAccess(resp.UserLoginID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refresh, err := s.tokens.IssueRefresh(resp.UserLoginID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
