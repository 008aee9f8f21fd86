package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/tokens"
)

// AccessVerifier проверяет access-токен и возвращает его claims.
type AccessVerifier interface {
	VerifyAccess(tokenStr string) (*tokens.Claims, error)
}

type claimsKey struct{}

// ClaimsFrom достаёт claims проверенного access-токена из контекста.
// Второе значение false означает, что запрос не прошёл через AuthJWT.
func ClaimsFrom(ctx context.Context) (*tokens.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*tokens.Claims)
	return c, ok && c != nil
}

// AuthJWT защищает группу ручек bearer-токеном: Authorization: Bearer <jwt>.
// Отсутствующий, битый или просроченный токен — 401 без деталей причины.
// Claims валидного токена кладутся в контекст; userLoginId из них — единственный
// источник идентичности для ручек, path и body его не переопределяют.
func AuthJWT(v AccessVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				apierrors.WriteError(w, r, apierrors.E(apierrors.KindUnauthorized, "missing bearer token"))
				return
			}

			claims, err := v.VerifyAccess(raw)
			if err != nil {
				apierrors.WriteError(w, r, apierrors.E(apierrors.KindUnauthorized, "invalid access token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
