package models

// User — профиль пользователя из auth-сервиса.
type User struct {
	UserLoginID string `json:"userLoginId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Picture     string `json:"picture,omitempty"`
	Provider    string `json:"provider"`
	CreatedAt   string `json:"createdAt"`
}
