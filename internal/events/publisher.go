package events

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/segmentio/kafka-go"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
)

// Publisher — процесс-глобальный продюсер Kafka. Создаётся один раз на
// старте (NewPublisher проверяет доступность брокера), переиспользуется
// всеми запросами; потокобезопасен.
type Publisher struct {
	w   *kafka.Writer
	log *slog.Logger
}

// NewPublisher устанавливает соединение с брокером и возвращает готовый
// продюсер. Ошибка подключения — фатальная для старта: процесс не должен
// принимать record-answer, не имея куда публиковать.
func NewPublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (*Publisher, error) {
	const op = "events.NewPublisher"

	if log == nil {
		log = slog.Default()
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%s: empty brokers list", op)
	}

	tlsCfg, err := tlsConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Проверяем достижимость брокера на старте: kafka.Writer ленивый и
	// сам по себе не скажет, что брокер недоступен, до первой записи.
	dialer := &kafka.Dialer{TLS: tlsCfg, ClientID: cfg.ClientID}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return nil, fmt.Errorf("%s: broker dial %s: %w", op, cfg.Brokers[0], err)
	}
	_ = conn.Close()

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Transport:              &kafka.Transport{TLS: tlsCfg, ClientID: cfg.ClientID},
	}

	return &Publisher{
		w:   w,
		log: log.With(slog.String("component", "events.publisher")),
	}, nil
}

// Publish сериализует payload в JSON и пишет в топик, дожидаясь
// подтверждения брокера. key задаёт партиционирование (пустой — round
// robin), headers опциональны.
//
// Вызов до установления соединения (нулевой Publisher) — ошибка сразу,
// без попытки записи.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any, key string, headers map[string]string) error {
	const op = "events.Publish"

	if p == nil || p.w == nil {
		return fmt.Errorf("%s: publisher is not connected", op)
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal payload: %w", op, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Value: value,
	}
	if key != "" {
		msg.Key = []byte(key)
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		publishFailures.WithLabelValues(topic).Inc()
		p.log.Error("kafka_write_failed",
			slog.String("topic", topic),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: write %s: %w", op, topic, err)
	}

	publishedTotal.WithLabelValues(topic).Inc()
	p.log.Debug("event_published",
		slog.String("topic", topic),
		slog.Int("value_len", len(value)),
	)

	return nil
}

// Close закрывает продюсер; вызывается один раз при остановке процесса.
func (p *Publisher) Close() error {
	if p == nil || p.w == nil {
		return nil
	}

	return p.w.Close()
}

// tlsConfig собирает TLS из PEM-файлов конфигурации; без файлов — plaintext.
func tlsConfig(cfg config.KafkaConfig) (*tls.Config, error) {
	if cfg.CAFile == "" && cfg.CertFile == "" && cfg.KeyFile == "" {
		return nil, nil
	}

	out := &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.CAFile != "" {
		ca, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("ca file %q: no valid certificates", cfg.CAFile)
		}
		out.RootCAs = pool
	}

	if cfg.CertFile != "" || cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load key pair: %w", err)
		}
		out.Certificates = []tls.Certificate{cert}
	}

	return out, nil
}
