package fluentlogger

import (
	"errors"
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const (
	defaultHost    = "127.0.0.1"
	defaultPort    = 24224
	defaultTimeout = 3 * time.Second
)

type Config struct {
	Host      string // "fluent-bit" в Docker
	Port      int
	TagPrefix string // имя сервиса, общий префикс тегов
	// Async - буферизовать записи и отправлять в фоне. Запрос не ждет Fluent Bit.
	Async bool
}

// NewClient создает клиент Fluent Bit. Соединение проверяется только при первой отправке.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, errors.New("fluentd tag prefix is required")
	}
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Timeout:    defaultTimeout,
		Async:      cfg.Async,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return logger, nil
}
