// Package sdp_parser разбирает файл из двух последовательных SDP описаний
// (локального и удаленного) и извлекает из каждого адрес соединения, порт
// аудио потока и модификаторы полосы b=AS, b=RS, b=RR.
//
// Разбор однопроходный и построчный. Строки, не совпавшие с шаблоном,
// пропускаются без ошибки. Ошибкой считается только нарушение структуры
// пары сессий: третья строка v=0 или отсутствие второй сессии.
package sdp_parser

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
	"github.com/sirupsen/logrus"
)

// Session данные одного SDP описания
type Session struct {
	Endpoint bandwidth.Endpoint
	Rates    bandwidth.Rates
}

// Stats статистика одного прохода
type Stats struct {
	Lines      int                  // Всего фрагментов
	Categories map[LineCategory]int // Фрагментов по категориям
	Misses     int                  // Строк, не совпавших с шаблоном извлечения
	Orphaned   int                  // Строк до первой v=0
}

// Exchange результат разбора пары offer/answer
type Exchange struct {
	Local  Session
	Remote Session
	Stats  Stats
}

// Parser разбирает входной поток
type Parser struct {
	config   Config
	logger   logrus.FieldLogger
	observer Observer
}

// NewParser создает Parser с проверкой конфигурации
func NewParser(config Config) (*Parser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	observer := config.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Parser{
		config:   config,
		logger:   config.Logger.WithField("component", "sdp_parser"),
		observer: observer,
	}, nil
}

// parseContext состояние одного прохода разбора
type parseContext struct {
	tracker *sessionTracker
	local   Session
	remote  Session
	stats   Stats
	line    int
}

// current возвращает сессию, в которую пишутся извлеченные поля,
// или nil до первой строки v=0
func (pc *parseContext) current() *Session {
	switch pc.tracker.state() {
	case StateLocalSession:
		return &pc.local
	case StateRemoteSession:
		return &pc.remote
	default:
		return nil
	}
}

// Parse читает r до конца и возвращает данные обеих сессий
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Exchange, error) {
	pc := &parseContext{
		tracker: newSessionTracker(p.logger),
		stats:   Stats{Categories: make(map[LineCategory]int)},
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(splitChunks(p.config.MaxLineLength))

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pc.line++
		if err := p.handleLine(ctx, pc, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, WrapParseError(ErrorCodeReadFailed, pc.line, err, "ошибка чтения входных данных")
	}

	if state := pc.tracker.state(); state != StateRemoteSession {
		return nil, NewParseError(ErrorCodeIncompleteInput, 0,
			"ожидалось два SDP описания, разбор завершен в состоянии %s", state)
	}
	if err := pc.tracker.finish(ctx); err != nil {
		return nil, WrapParseError(ErrorCodeIncompleteInput, 0, err, "не удалось завершить разбор")
	}

	p.logger.WithFields(logrus.Fields{
		"lines":  pc.stats.Lines,
		"misses": pc.stats.Misses,
	}).Debug("разбор завершен")

	return &Exchange{
		Local:  pc.local,
		Remote: pc.remote,
		Stats:  pc.stats,
	}, nil
}

func (p *Parser) handleLine(ctx context.Context, pc *parseContext, line string) error {
	category := Classify(line)
	pc.stats.Lines++
	pc.stats.Categories[category]++
	p.observer.ObserveLine(category.String())

	log := p.logger.WithFields(logrus.Fields{
		"line":     pc.line,
		"category": category.String(),
	})

	switch category {
	case LineIgnored:
		return nil
	case LineVersion:
		if err := pc.tracker.beginSession(ctx); err != nil {
			return WrapParseError(ErrorCodeUnexpectedSession, pc.line, err,
				"лишняя строка v=0: ожидалось не более двух SDP описаний")
		}
		return nil
	}

	session := pc.current()
	if session == nil {
		pc.stats.Orphaned++
		log.Warn("строка до первой v=0 пропущена")
		return nil
	}

	text := strings.TrimRight(line, "\r\n")
	if !extractInto(session, category, text) {
		pc.stats.Misses++
		p.observer.ObserveMiss(category.String())
		log.WithField("text", text).Debug("строка не совпала с шаблоном")
		return nil
	}

	log.Debug("поле извлечено")
	return nil
}

// extractInto применяет экстрактор категории к строке.
// При несовпадении сессия не изменяется.
func extractInto(session *Session, category LineCategory, line string) bool {
	switch category {
	case LineConnection:
		addr, ok := ParseConnection(line)
		if ok {
			session.Endpoint.Address = addr
		}
		return ok
	case LineMedia:
		port, protos, formats, ok := ParsePort(line)
		if ok {
			session.Endpoint.Port = port
			session.Endpoint.Protos = protos
			session.Endpoint.Formats = formats
		}
		return ok
	case LineBandwidthAS:
		return extractRate(&session.Rates.AS, line, BandwidthAS)
	case LineBandwidthRS:
		return extractRate(&session.Rates.RS, line, BandwidthRS)
	case LineBandwidthRR:
		return extractRate(&session.Rates.RR, line, BandwidthRR)
	}
	return false
}

func extractRate(rate *bandwidth.Rate, line string, kind BandwidthKind) bool {
	value, ok := ParseBandwidth(line, kind)
	if ok {
		*rate = bandwidth.NewRate(value)
	}
	return ok
}
