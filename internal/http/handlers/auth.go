package handlers

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/http/middleware"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
	logctx "github.com/pribylovaa/vocab-trainer-gateway/internal/pkg/log"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/service"
)

// stateCookieName — CSRF-state браузерного OAuth-handshake. Живёт только
// между стартом логина и обратным редиректом провайдера.
const stateCookieName = "oauth_state"

// OAuthStart — GET /auth/{provider}: редирект на страницу согласия.
func (h *Handlers) OAuthStart(w http.ResponseWriter, r *http.Request) {
	p, ok := h.oauth[chi.URLParam(r, "provider")]
	if !ok {
		apierrors.WriteError(w, r, apierrors.E(apierrors.KindNotFound, "unknown oauth provider"))
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		HttpOnly: true,
		MaxAge:   600,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, p.AuthURL(state), http.StatusFound)
}

// OAuthRedirect — GET /auth/{provider}/redirect: завершение логина.
//
// Контракт браузерного потока: этот хендлер НИКОГДА не отвечает ошибочным
// HTTP-статусом. Любой сбой уводит браузер на фронтенд с query-параметром
// error; успех — refresh-кука плюс редирект с access_token.
func (h *Handlers) OAuthRedirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := h.oauth[chi.URLParam(r, "provider")]
	if !ok {
		h.redirectWithError(w, r, "unknown_provider")
		return
	}

	// Провайдер мог вернуть отказ пользователя (?error=access_denied).
	if e := r.URL.Query().Get("error"); e != "" {
		h.redirectWithError(w, r, e)
		return
	}

	state, err := r.Cookie(stateCookieName)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		h.redirectWithError(w, r, "invalid_state")
		return
	}
	h.clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectWithError(w, r, "missing_code")
		return
	}

	tok, err := p.Exchange(ctx, code)
	if err != nil {
		logctx.From(ctx).Warn("oauth_exchange_failed", slog.String("err", err.Error()))
		h.redirectWithError(w, r, "exchange_failed")
		return
	}

	user, err := p.FetchUser(ctx, tok)
	if err != nil {
		logctx.From(ctx).Warn("oauth_userinfo_failed", slog.String("err", err.Error()))
		h.redirectWithError(w, r, "userinfo_failed")
		return
	}

	pair, err := h.svc.HandleOAuthLogin(ctx, user, clientIP(r))
	if err != nil {
		logctx.From(ctx).Error("oauth_login_failed", slog.String("err", err.Error()))
		h.redirectWithError(w, r, "login_failed")
		return
	}

	http.SetCookie(w, h.svc.RefreshCookie(pair.RefreshToken))
	http.Redirect(w, r, h.frontendRedirect("access_token", pair.AccessToken), http.StatusFound)
}

// RefreshToken — GET /auth/refresh-token: ротация пары по куке.
// Любой сбой — голый 401 {"message":"Unauthorized"}: формат исторический,
// фронтенд матчится на него, envelope ошибок тут не используется.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(service.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Unauthorized"})
		return
	}

	pair, err := h.svc.HandleRefreshToken(r.Context(), cookie.Value, clientIP(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Unauthorized"})
		return
	}

	http.SetCookie(w, h.svc.RefreshCookie(pair.RefreshToken))
	writeJSON(w, http.StatusOK, models.RefreshResponse{AccessToken: pair.AccessToken})
}

// Logout — POST /auth/logout. Идентичность для отзыва — claims
// access-токена; отзыв уходит в auth-сервис и без refresh-куки. Кука
// чистится безусловно: даже если отзыв не удался, клиент остаётся
// разлогиненным.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.LogoutRequest
	// Тело опционально; мусор молча игнорируем, как и его отсутствие.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		var raw string
		if cookie, err := r.Cookie(service.RefreshCookieName); err == nil {
			raw = cookie.Value
		}

		h.svc.HandleLogout(r.Context(), claims, raw, req.IsLoggedOutFromAllDevices)
	}

	http.SetCookie(w, h.svc.ClearRefreshCookie())
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}

func (h *Handlers) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.frontendRedirect("error", code), http.StatusFound)
}

// frontendRedirect — адрес возврата на фронтенд с одним query-параметром
// поверх базового URL (он провалидирован конфигом и распарсен один раз).
func (h *Handlers) frontendRedirect(param, value string) string {
	u := *h.frontendURL
	q := u.Query()
	q.Set(param, value)
	u.RawQuery = q.Encode()

	return u.String()
}

func (h *Handlers) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// clientIP — адрес клиента для аудита сессий: первый hop из
// X-Forwarded-For, иначе RemoteAddr без порта.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
