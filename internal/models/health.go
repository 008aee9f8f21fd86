package models

// Статусы здоровья апстримов.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

// ServiceHealth — результат одиночной пробы апстрима.
type ServiceHealth struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
