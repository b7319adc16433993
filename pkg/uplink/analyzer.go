// Package uplink связывает разбор входного файла и расчет полосы для обоих
// направлений. Ошибки возвращаются вызывающему; завершение процесса
// остается за точкой входа.
package uplink

import (
	"context"
	"io"
	"os"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
	"github.com/arzzra/sdpbw/pkg/metrics"
	"github.com/arzzra/sdpbw/pkg/sdp_parser"
	"github.com/sirupsen/logrus"
)

// Result рассчитанная полоса обоих направлений
type Result struct {
	// Flows[0] - local -> remote, Flows[1] - remote -> local
	Flows [2]bandwidth.Bandwidth
	Stats sdp_parser.Stats
}

// Analyzer выполняет полный проход: разбор, расчет, метрики
type Analyzer struct {
	parser     *sdp_parser.Parser
	calculator *bandwidth.Calculator
	logger     logrus.FieldLogger
	metrics    *metrics.Collector
}

// NewAnalyzer создает Analyzer с проверкой конфигурации
func NewAnalyzer(config Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	parserConfig := config.Parser
	if config.Metrics != nil {
		parserConfig.Observer = config.Metrics
	}

	parser, err := sdp_parser.NewParser(parserConfig)
	if err != nil {
		return nil, err
	}

	calculator, err := bandwidth.NewCalculator(config.Bandwidth)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		parser:     parser,
		calculator: calculator,
		logger:     config.Logger.WithField("component", "uplink"),
		metrics:    config.Metrics,
	}, nil
}

// AnalyzeFile открывает файл, читает его до конца и закрывает до начала
// расчета
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	exchange, err := a.parseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return a.calculate(exchange)
}

func (a *Analyzer) parseFile(ctx context.Context, path string) (*sdp_parser.Exchange, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return a.parser.Parse(ctx, file)
}

// Analyze разбирает r и рассчитывает оба направления
func (a *Analyzer) Analyze(ctx context.Context, r io.Reader) (*Result, error) {
	exchange, err := a.parser.Parse(ctx, r)
	if err != nil {
		return nil, err
	}
	return a.calculate(exchange)
}

func (a *Analyzer) calculate(exchange *sdp_parser.Exchange) (*Result, error) {
	directions := []struct {
		name string
		from sdp_parser.Session
		to   sdp_parser.Session
	}{
		{name: metrics.DirectionLocalToRemote, from: exchange.Local, to: exchange.Remote},
		{name: metrics.DirectionRemoteToLocal, from: exchange.Remote, to: exchange.Local},
	}

	result := &Result{Stats: exchange.Stats}
	for i, d := range directions {
		log := a.logger.WithField("direction", d.name)

		bw, err := a.calculator.Calculate(d.from.Endpoint, d.to.Endpoint, d.from.Rates)
		if err != nil {
			a.observeFailure(err)
			log.WithError(err).WithFields(logrus.Fields{
				"rtp_kbps": bw.RTP,
				"rs_bps":   bw.RS,
				"rr_bps":   bw.RR,
			}).Debug("расчет полосы прерван")
			return nil, err
		}

		log.WithFields(logrus.Fields{
			"rtp_kbps":   bw.RTP,
			"rs_bps":     bw.RS,
			"rr_bps":     bw.RR,
			"rtcp_bps":   bw.RTCP,
			"rs_derived": bw.RSDerived,
			"rr_derived": bw.RRDerived,
		}).Debug("полоса рассчитана")

		a.metrics.ObserveBandwidth(d.name, bw)
		result.Flows[i] = bw
	}

	return result, nil
}

func (a *Analyzer) observeFailure(err error) {
	switch {
	case bandwidth.IsError(err, bandwidth.ErrorCodeSenderLimitExceeded):
		a.metrics.ObserveLimitViolation("rs")
	case bandwidth.IsError(err, bandwidth.ErrorCodeReceiverLimitExceeded):
		a.metrics.ObserveLimitViolation("rr")
	}
}
