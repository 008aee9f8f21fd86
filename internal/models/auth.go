// Входные/выходные модели REST-поверхности шлюза, зеркалят контракты
// апстрим-сервисов.
package models

// Провайдеры OAuth-логина.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// OAuthUser — профиль, полученный от OAuth-провайдера. Используется один
// раз для запроса логина у auth-сервиса и дальше не хранится.
type OAuthUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Picture     string `json:"picture"`
	Provider    string `json:"provider"`
}

// TokenPair — результат логина/рефреша: access уходит клиенту в теле,
// refresh — только в http-only куке.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse — тело ответа GET /auth/refresh-token (refresh-токен
// наружу не возвращается, только в куке).
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// LogoutRequest — тело POST /auth/logout.
type LogoutRequest struct {
	IsLoggedOutFromAllDevices bool `json:"isLoggedOutFromAllDevices"`
}

// MessageResponse — простые ответы вида {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}
