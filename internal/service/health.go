package service

import (
	"context"
	"sync"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
)

// Health опрашивает апстримы параллельно и собирает сводку. Сбой одной
// пробы не роняет остальные и не превращается в ошибку вызова: ручка
// health всегда отвечает 200, деградация видна в статусах.
func (s *Service) Health(ctx context.Context) []models.ServiceHealth {
	probes := []struct {
		name  string
		probe func(context.Context) (string, error)
	}{
		{name: "auth-service", probe: s.cl.Auth.Health},
		{name: "vocabulary-service", probe: s.cl.Vocabulary.Health},
	}

	out := make([]models.ServiceHealth, len(probes))

	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)

		go func() {
			defer wg.Done()

			msg, err := p.probe(ctx)
			if err != nil {
				out[i] = models.ServiceHealth{
					Name:    p.name,
					Status:  models.HealthStatusUnhealthy,
					Message: err.Error(),
				}

				return
			}

			out[i] = models.ServiceHealth{
				Name:    p.name,
				Status:  models.HealthStatusHealthy,
				Message: msg,
			}
		}()
	}
	wg.Wait()

	return out
}
