package uplink

import (
	"errors"
	"io"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
	"github.com/arzzra/sdpbw/pkg/metrics"
	"github.com/arzzra/sdpbw/pkg/sdp_parser"
	"github.com/sirupsen/logrus"
)

// Config конфигурация Analyzer
type Config struct {
	Parser    sdp_parser.Config
	Bandwidth bandwidth.Config

	Logger  logrus.FieldLogger
	Metrics *metrics.Collector // nil отключает метрики
}

// DefaultConfig возвращает конфигурацию по умолчанию без вывода логов и метрик
func DefaultConfig() Config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	parserConfig := sdp_parser.DefaultConfig()
	parserConfig.Logger = logger

	return Config{
		Parser:    parserConfig,
		Bandwidth: bandwidth.DefaultConfig(),
		Logger:    logger,
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("uplink: Logger не может быть nil")
	}
	if err := c.Parser.Validate(); err != nil {
		return err
	}
	return c.Bandwidth.Validate()
}
