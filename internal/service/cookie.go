package service

import "net/http"

// RefreshCookieName — имя http-only куки с refresh-токеном.
const RefreshCookieName = "refresh_token"

// refreshCookiePath — кука ходит только на /auth/* (refresh/logout),
// остальные ручки её не видят.
const refreshCookiePath = "/auth"

// RefreshCookie собирает куку с новым refresh-токеном.
//
// Secure и SameSite=None только в prod (фронт живёт на другом origin);
// вне prod SameSite=Lax, чтобы кука работала по http на localhost.
func (s *Service) RefreshCookie(value string) *http.Cookie {
	c := &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     refreshCookiePath,
		HttpOnly: true,
		MaxAge:   int(s.tokens.RefreshTTL().Seconds()),
		SameSite: http.SameSiteLaxMode,
	}

	if s.prod {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}

	return c
}

// ClearRefreshCookie собирает куку-удаление (MaxAge < 0).
func (s *Service) ClearRefreshCookie() *http.Cookie {
	c := s.RefreshCookie("")
	c.MaxAge = -1

	return c
}
