package sdp_parser

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultMaxLineLength размер буфера чтения строки вместе с терминатором.
// Более длинные строки делятся на фрагменты по DefaultMaxLineLength-1 байт.
const DefaultMaxLineLength = 512

const minLineLength = 16

// Observer получает события разбора (реализуется сборщиком метрик)
type Observer interface {
	ObserveLine(category string)
	ObserveMiss(field string)
}

type nopObserver struct{}

func (nopObserver) ObserveLine(string) {}
func (nopObserver) ObserveMiss(string) {}

// Config содержит настройки Parser
type Config struct {
	MaxLineLength int

	Logger   logrus.FieldLogger
	Observer Observer
}

// DefaultConfig возвращает конфигурацию по умолчанию.
// Логгер по умолчанию ничего не выводит.
func DefaultConfig() Config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return Config{
		MaxLineLength: DefaultMaxLineLength,
		Logger:        logger,
		Observer:      nopObserver{},
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.MaxLineLength < minLineLength {
		return NewParseError(ErrorCodeInvalidConfig, 0,
			"MaxLineLength должен быть не меньше %d", minLineLength)
	}
	if c.Logger == nil {
		return NewParseError(ErrorCodeInvalidConfig, 0, "Logger не может быть nil")
	}
	return nil
}
