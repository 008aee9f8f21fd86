package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// Полный корректный YAML под текущую структуру config.go.
const sampleYAML = `
env: "prod"
http:
  host: "0.0.0.0"
  port: "8080"
metrics:
  host: "127.0.0.1"
  port: "9090"
upstreams:
  auth_url: "http://auth:3001"
  auth_token: "auth-secret"
  auth_timeout: "5s"
  vocab_url: "http://vocab:3002"
  vocab_token: "vocab-secret"
  vocab_timeout: "7s"
jwt:
  secret: "super-secret"
  mode: "local"
  access_ttl: "10m"
  refresh_ttl: "240h"
  issuer: "api-gateway"
  audience:
    - "vocab-trainer"
oauth:
  google_client_id: "g-client"
  google_client_secret: "g-secret"
  google_redirect_url: "http://gw/auth/google/redirect"
  frontend_redirect_url: "https://app.example.com/auth/redirect"
kafka:
  brokers:
    - "kafka-1:9092"
    - "kafka-2:9092"
  client_id: "gateway-prod"
cors:
  allowed_origins:
    - "https://app.example.com"
timeouts:
  service: "3s"
`

// Минимальный YAML: только обязательные поля, остальное — дефолты.
const minimalYAML = `
upstreams:
  auth_token: "a"
  vocab_token: "v"
jwt:
  secret: "s"
`

const brokenYAML = `
env: [unclosed
`

func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "0.0.0.0", Port: "8080"}
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestMetricsConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := MetricsConfig{Host: "127.0.0.1", Port: "9090"}
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
}

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.True(t, cfg.IsProd())
	require.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	require.Equal(t, "127.0.0.1:9090", cfg.Metrics.Addr())

	require.Equal(t, "http://auth:3001", cfg.Upstreams.AuthURL)
	require.Equal(t, "auth-secret", cfg.Upstreams.AuthToken)
	require.Equal(t, 5*time.Second, cfg.Upstreams.AuthTimeout)
	require.Equal(t, "http://vocab:3002", cfg.Upstreams.VocabURL)
	require.Equal(t, 7*time.Second, cfg.Upstreams.VocabTimeout)

	require.Equal(t, TokenModeLocal, cfg.JWT.Mode)
	require.Equal(t, 10*time.Minute, cfg.JWT.AccessTTL)
	require.Equal(t, 240*time.Hour, cfg.JWT.RefreshTTL)
	require.Equal(t, []string{"vocab-trainer"}, cfg.JWT.Audience)

	require.Equal(t, "https://app.example.com/auth/redirect", cfg.OAuth.FrontendRedirectURL)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
}

func TestLoad_MinimalYAML_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "minimal.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.False(t, cfg.IsProd())
	require.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	require.Equal(t, TokenModeBackend, cfg.JWT.Mode)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	require.Equal(t, 720*time.Hour, cfg.JWT.RefreshTTL)
	require.Equal(t, "api-gateway", cfg.JWT.Issuer)
	require.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "http://localhost:4000/auth/redirect", cfg.OAuth.FrontendRedirectURL)
	require.Equal(t, 15*time.Second, cfg.Timeouts.Service)
}

func TestLoad_BrokenYAML_Error(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
}

func TestLoad_MissingFile_Error(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_UnknownJWTMode(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "mode.yaml", minimalYAML+`
  mode: "federated"
`)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "jwt mode")
}

func TestValidate_RelativeFrontendURL(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "fe.yaml", minimalYAML+`
oauth:
  frontend_redirect_url: "/auth/redirect"
`)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "frontend_redirect_url")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "env.yaml", minimalYAML)

	t.Setenv("JWT_MODE", "local")
	t.Setenv("HTTP_PORT", "8088")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, TokenModeLocal, cfg.JWT.Mode)
	require.Equal(t, "0.0.0.0:8088", cfg.HTTP.Addr())
}
