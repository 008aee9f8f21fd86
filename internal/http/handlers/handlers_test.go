package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/events"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/http/middleware"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/oauth"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/service"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/tokens"
)

// fakeEvents — публикация в память вместо брокера.
type fakeEvents struct {
	published []events.RecordAnswer
	err       error
}

func (f *fakeEvents) PublishRecordAnswer(_ context.Context, msg events.RecordAnswer) error {
	if f.err != nil {
		return f.err
	}

	f.published = append(f.published, msg)
	return nil
}

type testEnv struct {
	h  *Handlers
	tm *tokens.Manager
	ev *fakeEvents
}

func newTestEnv(t *testing.T, authURL, vocabURL string) *testEnv {
	t.Helper()

	if authURL == "" {
		authURL = "http://127.0.0.1:1"
	}
	if vocabURL == "" {
		vocabURL = "http://127.0.0.1:1"
	}

	cl, err := clients.New(config.UpstreamsConfig{
		AuthURL:      authURL,
		AuthToken:    "svc",
		AuthTimeout:  time.Second,
		VocabURL:     vocabURL,
		VocabToken:   "svc",
		VocabTimeout: time.Second,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(cl.Close)

	cfg := &config.Config{
		Env: "local",
		JWT: config.JWTConfig{
			Secret:     "handler-secret",
			Mode:       config.TokenModeLocal,
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
			Issuer:     "api-gateway",
			Audience:   []string{"vocab-trainer"},
		},
		OAuth: config.OAuthConfig{
			GoogleClientID:      "google-client",
			GoogleClientSecret:  "google-secret",
			GoogleRedirectURL:   "http://localhost:3000/auth/google/redirect",
			FrontendRedirectURL: "http://localhost:4000/auth/redirect",
		},
	}

	tm := tokens.NewManager(cfg.JWT)
	svc := service.New(cfg, cl, tm, nil)
	ev := &fakeEvents{}

	h, err := New(Deps{
		Service:     svc,
		Clients:     cl,
		Events:      ev,
		OAuth:       oauth.Providers(cfg.OAuth),
		FrontendURL: cfg.OAuth.FrontendRedirectURL,
	})
	require.NoError(t, err)

	return &testEnv{h: h, tm: tm, ev: ev}
}

func TestNew_RejectsRelativeFrontendURL(t *testing.T) {
	cl, err := clients.New(config.UpstreamsConfig{
		AuthURL:    "http://127.0.0.1:1",
		AuthToken:  "a",
		VocabURL:   "http://127.0.0.1:1",
		VocabToken: "v",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(cl.Close)

	_, err = New(Deps{Clients: cl, FrontendURL: "/auth/redirect"})
	require.Error(t, err)

	_, err = New(Deps{Clients: cl, FrontendURL: "http://localhost:4000/auth/redirect"})
	require.NoError(t, err)
}

func (e *testEnv) authHeader(t *testing.T, userLoginID string) string {
	t.Helper()

	access, err := e.tm.IssueAccess(userLoginID, time.Now())
	require.NoError(t, err)

	return "Bearer " + access
}

func TestRecordAnswer(t *testing.T) {
	env := newTestEnv(t, "", "")

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Post("/vocabulary/word-progress/record-answer", env.h.RecordAnswer)

	const wordID = "3e2f1a90-0a69-4f0e-9a64-25c0f7e0a111"

	req := httptest.NewRequest(http.MethodPost, "/vocabulary/word-progress/record-answer",
		strings.NewReader(`{"wordId":"`+wordID+`","quality":0}`))
	req.Header.Set("Authorization", env.authHeader(t, "user-42"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"accepted":true}`, rec.Body.String())

	require.Len(t, env.ev.published, 1)
	require.Equal(t, events.RecordAnswer{
		UserLoginID: "user-42",
		WordID:      wordID,
		Quality:     0,
	}, env.ev.published[0])
}

func TestRecordAnswer_ValidationRejects(t *testing.T) {
	env := newTestEnv(t, "", "")

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Post("/x", env.h.RecordAnswer)

	cases := []string{
		`{"wordId":"not-a-uuid","quality":3}`,
		`{"wordId":"3e2f1a90-0a69-4f0e-9a64-25c0f7e0a111","quality":6}`,
		`{"wordId":"3e2f1a90-0a69-4f0e-9a64-25c0f7e0a111"}`,
		`not json`,
	}

	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
		req.Header.Set("Authorization", env.authHeader(t, "user-42"))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}

	require.Empty(t, env.ev.published)
}

func TestRecordAnswer_PublishFailureIs500(t *testing.T) {
	env := newTestEnv(t, "", "")
	env.ev.err = errors.New("broker down")

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Post("/x", env.h.RecordAnswer)

	req := httptest.NewRequest(http.MethodPost, "/x",
		strings.NewReader(`{"wordId":"3e2f1a90-0a69-4f0e-9a64-25c0f7e0a111","quality":5}`))
	req.Header.Set("Authorization", env.authHeader(t, "user-42"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRefreshToken_MissingCookie(t *testing.T) {
	env := newTestEnv(t, "", "")

	rec := httptest.NewRecorder()
	env.h.RefreshToken(rec, httptest.NewRequest(http.MethodGet, "/auth/refresh-token", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestRefreshToken_RotatesCookie(t *testing.T) {
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/internal/oauth/refresh", r.URL.Path)
		_, _ = w.Write([]byte(`{"userLoginId":"user-42"}`))
	}))
	defer auth.Close()

	env := newTestEnv(t, auth.URL, "")

	raw, err := env.tm.IssueRefresh("user-42", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: service.RefreshCookieName, Value: raw})

	rec := httptest.NewRecorder()
	env.h.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	claims, err := env.tm.VerifyAccess(body.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.UserLoginID)

	var refreshed *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == service.RefreshCookieName {
			refreshed = c
		}
	}
	require.NotNil(t, refreshed)
	require.NotEqual(t, raw, refreshed.Value)
	require.True(t, refreshed.HttpOnly)
}

func TestRefreshToken_GarbageCookieIs401(t *testing.T) {
	env := newTestEnv(t, "", "")

	req := httptest.NewRequest(http.MethodGet, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: service.RefreshCookieName, Value: "garbage"})

	rec := httptest.NewRecorder()
	env.h.RefreshToken(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestLogout_ClearsCookieUnconditionally(t *testing.T) {
	env := newTestEnv(t, "", "")

	// Без куки и без тела: всё равно 200 и кука-удаление.
	rec := httptest.NewRecorder()
	env.h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Logged out successfully"}`, rec.Body.String())

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == service.RefreshCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}

func TestLogout_RevokesWithoutRefreshCookie(t *testing.T) {
	var calls atomic.Int32
	var got struct {
		UserLoginID string `json:"userLoginId"`
		JTI         string `json:"jti"`
		AllDevices  bool   `json:"allDevices"`
	}

	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/internal/logout", r.URL.Path)
		calls.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer auth.Close()

	env := newTestEnv(t, auth.URL, "")

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Post("/auth/logout", env.h.Logout)

	// Куки нет, но отзыв по всем устройствам обязан дойти до апстрима:
	// идентичность — из access-токена.
	req := httptest.NewRequest(http.MethodPost, "/auth/logout",
		strings.NewReader(`{"isLoggedOutFromAllDevices":true}`))
	req.Header.Set("Authorization", env.authHeader(t, "user-42"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "user-42", got.UserLoginID)
	require.Empty(t, got.JTI)
	require.True(t, got.AllDevices)
}

func TestLogout_ForwardsRefreshJTI(t *testing.T) {
	var got struct {
		UserLoginID string `json:"userLoginId"`
		JTI         string `json:"jti"`
	}

	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer auth.Close()

	env := newTestEnv(t, auth.URL, "")

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Post("/auth/logout", env.h.Logout)

	raw, err := env.tm.IssueRefresh("user-42", time.Now())
	require.NoError(t, err)
	refresh, err := env.tm.VerifyRefresh(raw)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", env.authHeader(t, "user-42"))
	req.AddCookie(&http.Cookie{Name: service.RefreshCookieName, Value: raw})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-42", got.UserLoginID)
	require.Equal(t, refresh.ID, got.JTI)
}

func TestOAuthStart(t *testing.T) {
	env := newTestEnv(t, "", "")

	r := chi.NewRouter()
	r.Get("/auth/{provider}", env.h.OAuthStart)

	// Незнакомый провайдер.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/github", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Google: редирект на страницу согласия + state-кука.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "client_id=google-client")

	var state *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == stateCookieName {
			state = c
		}
	}
	require.NotNil(t, state)
	require.NotEmpty(t, state.Value)
	require.Contains(t, rec.Header().Get("Location"), "state="+state.Value)
}

func TestOAuthRedirect_InvalidStateRedirectsWithError(t *testing.T) {
	env := newTestEnv(t, "", "")

	r := chi.NewRouter()
	r.Get("/auth/{provider}/redirect", env.h.OAuthRedirect)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/redirect?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "error=invalid_state")
	require.Contains(t, rec.Header().Get("Location"), "localhost:4000")
}

func TestOAuthRedirect_ProviderErrorPassedThrough(t *testing.T) {
	env := newTestEnv(t, "", "")

	r := chi.NewRouter()
	r.Get("/auth/{provider}/redirect", env.h.OAuthRedirect)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google/redirect?error=access_denied", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "error=access_denied")
}

func TestCourses_ScopedByTokenIdentity(t *testing.T) {
	vocab := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/user-42/courses", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"courses":[]}`))
	}))
	defer vocab.Close()

	env := newTestEnv(t, "", vocab.URL)

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Get("/courses/me/my-courses", env.h.Courses)

	req := httptest.NewRequest(http.MethodGet, "/courses/me/my-courses?page=2&limit=10", nil)
	req.Header.Set("Authorization", env.authHeader(t, "user-42"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"courses":[]}`, rec.Body.String())
}

func TestCourses_InvalidQueryIs400(t *testing.T) {
	env := newTestEnv(t, "", "")

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Get("/courses/me/my-courses", env.h.Courses)

	// Вне диапазона и нечисловые значения — одинаково bad_request.
	for _, query := range []string{"limit=500", "limit=abc", "page=x"} {
		req := httptest.NewRequest(http.MethodGet, "/courses/me/my-courses?"+query, nil)
		req.Header.Set("Authorization", env.authHeader(t, "user-42"))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "query: %s", query)
	}
}

func TestDueWords_MalformedQueryIs400(t *testing.T) {
	env := newTestEnv(t, "", "")

	r := chi.NewRouter()
	r.With(middleware.AuthJWT(env.tm)).Get("/vocabulary/word-progress/due-words", env.h.DueWords)

	for _, query := range []string{"limit=many", "includeNew=maybe"} {
		req := httptest.NewRequest(http.MethodGet, "/vocabulary/word-progress/due-words?"+query, nil)
		req.Header.Set("Authorization", env.authHeader(t, "user-42"))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "query: %s", query)
	}
}

func TestHealth_AlwaysOK(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`"OK"`))
	}))
	defer healthy.Close()

	env := newTestEnv(t, healthy.URL, "")

	rec := httptest.NewRecorder()
	env.h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	require.Equal(t, "healthy", out[0].Status)
	require.Equal(t, "unhealthy", out[1].Status)
}
