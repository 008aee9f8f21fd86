// handlers — входная REST-поверхность шлюза.
//
// Хендлеры тонкие: разобрать запрос, проверить DTO, вызвать сервис или
// клиент апстрима, записать ответ. Идентичность пользователя всегда
// берётся из claims проверенного access-токена (middleware.ClaimsFrom),
// path и body её не переопределяют.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/vocabclient"
	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/events"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/http/middleware"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/oauth"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/service"
)

type Handlers struct {
	log         *slog.Logger
	svc         *service.Service
	vocab       *vocabclient.Client
	events      events.WordProgressEvents
	oauth       map[string]*oauth.Provider
	frontendURL *url.URL
}

type Deps struct {
	Log         *slog.Logger
	Service     *service.Service
	Clients     *clients.Clients
	Events      events.WordProgressEvents
	OAuth       map[string]*oauth.Provider
	FrontendURL string
}

func New(d Deps) (*Handlers, error) {
	const op = "handlers.New"

	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	frontendURL, err := url.Parse(d.FrontendURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse frontend url %q: %w", op, d.FrontendURL, err)
	}
	if frontendURL.Scheme == "" || frontendURL.Host == "" {
		return nil, fmt.Errorf("%s: frontend url %q: scheme and host required", op, d.FrontendURL)
	}

	return &Handlers{
		log:         log,
		svc:         d.Service,
		vocab:       d.Clients.Vocabulary,
		events:      d.Events,
		oauth:       d.OAuth,
		frontendURL: frontendURL,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeValid декодирует JSON-тело и прогоняет DTO через validator.
// Любая ошибка на этом пути — bad_request, до апстрима запрос не доходит.
func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierrors.E(apierrors.KindBadRequest, "malformed json body: "+err.Error())
	}

	if err := models.Validate(v); err != nil {
		return apierrors.E(apierrors.KindBadRequest, err.Error())
	}

	return nil
}

// userID — userLoginId из claims. Пустая строка невозможна на защищённых
// маршрутах: AuthJWT отклоняет токены без userLoginId.
func userID(r *http.Request) string {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return ""
	}

	return claims.UserLoginID
}

// queryInt/queryBool: отсутствующий параметр — дефолт, нечитаемый —
// bad_request. Молчаливый откат на дефолт маскировал бы опечатки клиента.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.E(apierrors.KindBadRequest, name+" must be an integer")
	}

	return n, nil
}

func queryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierrors.E(apierrors.KindBadRequest, name+" must be a boolean")
	}

	return b, nil
}

func queryString(r *http.Request, name, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}

	return def
}
