package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/httpc"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/tokens"
)

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var ctxID string

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID, _ = r.Context().Value(httpc.CtxRequestID).(string)
		w.WriteHeader(http.StatusNoContent)
	}), RequestID())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Len(t, rec.Header().Get("X-Request-Id"), 32)
	require.Equal(t, rec.Header().Get("X-Request-Id"), ctxID)
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), RequestID())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-keep")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "rid-keep", rec.Header().Get("X-Request-Id"))
}

func TestRecover_WritesInternal(t *testing.T) {
	h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}), Recover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "internal", body.Error.Code)
	require.NotContains(t, rec.Body.String(), "boom")
}

func TestTimeout_AddsDeadline(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Deadline()
		require.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	}), Timeout(time.Second))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func newTestManager() *tokens.Manager {
	return tokens.NewManager(config.JWTConfig{
		Secret:     "mw-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
		Issuer:     "api-gateway",
		Audience:   []string{"vocab-trainer"},
	})
}

func TestAuthJWT(t *testing.T) {
	tm := newTestManager()

	var gotUser string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		require.True(t, ok)
		gotUser = claims.UserLoginID
		w.WriteHeader(http.StatusNoContent)
	}), AuthJWT(tm))

	// Без токена.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Мусорный токен.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Не bearer-схема.
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Валидный токен.
	access, err := tm.IssueAccess("user-42", time.Now())
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "user-42", gotUser)
}
