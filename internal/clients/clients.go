// clients — сборка клиентов внутренних сервисов шлюза.
package clients

import (
	"fmt"
	"log/slog"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/authclient"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/httpc"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/vocabclient"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
)

// Clients — типизированные клиенты апстримов.
// Создаются один раз на старте процесса и живут до останова.
type Clients struct {
	Auth       *authclient.Client
	Vocabulary *vocabclient.Client
}

func New(cfg config.UpstreamsConfig, log *slog.Logger) (*Clients, error) {
	const op = "clients.New"

	authHTTP, err := httpc.New(httpc.Config{
		BaseURL:      cfg.AuthURL,
		ServiceToken: cfg.AuthToken,
		UserAgent:    "api-gateway",
		Timeout:      cfg.AuthTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("%s: auth client: %w", op, err)
	}

	vocabHTTP, err := httpc.New(httpc.Config{
		BaseURL:      cfg.VocabURL,
		ServiceToken: cfg.VocabToken,
		UserAgent:    "api-gateway",
		Timeout:      cfg.VocabTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("%s: vocabulary client: %w", op, err)
	}

	return &Clients{
		Auth:       authclient.New(authHTTP),
		Vocabulary: vocabclient.New(vocabHTTP),
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}

	c.Auth.Close()
	c.Vocabulary.Close()
}
