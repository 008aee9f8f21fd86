// config - источник загрузки конфигурации для API Gateway.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Upstreams UpstreamsConfig `yaml:"upstreams"`
	JWT       JWTConfig       `yaml:"jwt"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	CORS      CORSConfig      `yaml:"cors"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// IsProd — prod-окружение управляет атрибутами refresh-куки (Secure/SameSite).
func (c *Config) IsProd() bool { return c.Env == "prod" }

// TimeoutConfig — общий дедлайн обработки входящего запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// HTTPConfig — публичный REST-сервер шлюза.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host"   env:"METRICS_HOST"   env-default:"0.0.0.0"`
	Port string `yaml:"port"   env:"METRICS_PORT"   env-default:"9090"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// UpstreamsConfig — внутренние HTTP-сервисы за шлюзом.
// Каждый исходящий вызов несёт service-to-service секрет в X-Service-Token.
type UpstreamsConfig struct {
	AuthURL      string        `yaml:"auth_url"      env:"AUTH_SERVICE_URL"      env-default:"http://localhost:3001"`
	AuthToken    string        `yaml:"auth_token"    env:"AUTH_SERVICE_TOKEN"    env-required:"true"`
	AuthTimeout  time.Duration `yaml:"auth_timeout"  env:"AUTH_SERVICE_TIMEOUT"  env-default:"10s"`
	VocabURL     string        `yaml:"vocab_url"     env:"VOCAB_SERVICE_URL"     env-default:"http://localhost:3002"`
	VocabToken   string        `yaml:"vocab_token"   env:"VOCAB_SERVICE_TOKEN"   env-required:"true"`
	VocabTimeout time.Duration `yaml:"vocab_timeout" env:"VOCAB_SERVICE_TIMEOUT" env-default:"10s"`
}

// Режимы выпуска access-токена (JWTConfig.Mode).
const (
	// TokenModeBackend — auth-сервис выпускает пару токенов целиком.
	TokenModeBackend = "backend"
	// TokenModeLocal — auth-сервис возвращает только userLoginId,
	// шлюз подписывает пару сам.
	TokenModeLocal = "local"
)

// JWTConfig — параметры подписи и проверки токенов.
// Секрет общий для access- и refresh-токенов; refresh живёт дольше
// и определяет max-age refresh-куки.
type JWTConfig struct {
	Secret     string        `yaml:"secret"      env:"JWT_SECRET" env-required:"true"`
	Mode       string        `yaml:"mode"        env:"JWT_MODE" env-default:"backend"`
	AccessTTL  time.Duration `yaml:"access_ttl"  env:"JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env:"JWT_REFRESH_TTL" env-default:"720h"`
	Issuer     string        `yaml:"issuer"      env:"JWT_ISSUER" env-default:"api-gateway"`
	Audience   []string      `yaml:"audience"    env:"JWT_AUDIENCE" env-separator:"," env-default:"vocab-trainer"`
}

// OAuthConfig — провайдеры браузерного логина.
// FrontendRedirectURL — куда возвращаем браузер после завершения логина
// (access_token или error уходят query-параметром).
type OAuthConfig struct {
	GoogleClientID       string `yaml:"google_client_id"       env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `yaml:"google_client_secret"   env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL    string `yaml:"google_redirect_url"    env:"GOOGLE_REDIRECT_URL"`
	FacebookClientID     string `yaml:"facebook_client_id"     env:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `yaml:"facebook_client_secret" env:"FACEBOOK_CLIENT_SECRET"`
	FacebookRedirectURL  string `yaml:"facebook_redirect_url"  env:"FACEBOOK_REDIRECT_URL"`
	FrontendRedirectURL  string `yaml:"frontend_redirect_url"  env:"FRONTEND_REDIRECT_URL" env-default:"http://localhost:4000/auth/redirect"`
}

// KafkaConfig — брокеры и TLS-материал продюсера событий.
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"   env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	ClientID string   `yaml:"client_id" env:"KAFKA_CLIENT_ID" env-default:"api-gateway"`
	CAFile   string   `yaml:"ca_file"   env:"KAFKA_CA_FILE"`
	CertFile string   `yaml:"cert_file" env:"KAFKA_CERT_FILE"`
	KeyFile  string   `yaml:"key_file"  env:"KAFKA_KEY_FILE"`
}

// CORSConfig — фронтенд-origin'ы, которым разрешены credentials-запросы.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:4000"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.JWT.Mode {
	case TokenModeBackend, TokenModeLocal:
	default:
		return fmt.Errorf("unknown jwt mode %q: want %q or %q", c.JWT.Mode, TokenModeBackend, TokenModeLocal)
	}

	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers list is empty")
	}

	// Адрес возврата на фронтенд участвует в редиректах логина; битое
	// значение должно валить старт, а не каждый логин.
	u, err := url.Parse(c.OAuth.FrontendRedirectURL)
	if err != nil {
		return fmt.Errorf("frontend_redirect_url %q: %w", c.OAuth.FrontendRedirectURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("frontend_redirect_url %q: absolute URL required", c.OAuth.FrontendRedirectURL)
	}

	return nil
}
