// Package metrics собирает метрики прохода sdpbw в Prometheus формате.
//
// Утилита однократная, поэтому метрики не публикуются по HTTP, а
// записываются в текстовый файл для textfile collector node_exporter.
package metrics

import (
	"github.com/arzzra/sdpbw/pkg/bandwidth"
	"github.com/prometheus/client_golang/prometheus"
)

// Значения метки direction
const (
	DirectionLocalToRemote = "local_to_remote"
	DirectionRemoteToLocal = "remote_to_local"
)

// Config конфигурация системы метрик
type Config struct {
	// Enabled включает/выключает сбор метрик
	Enabled bool

	// Namespace префикс для Prometheus метрик
	Namespace string

	// Subsystem подсистема для Prometheus метрик
	Subsystem string
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Namespace: "sdpbw",
	}
}

// Collector собирает метрики одного прохода.
// Выключенный или nil Collector ничего не делает.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	linesTotal      *prometheus.CounterVec
	parseMisses     *prometheus.CounterVec
	limitViolations *prometheus.CounterVec
	rtpBandwidth    *prometheus.GaugeVec
	rtcpBandwidth   *prometheus.GaugeVec
	uplinkTotal     *prometheus.GaugeVec
}

// NewCollector создает новый сборщик метрик на собственном реестре
func NewCollector(config *Config) *Collector {
	if config == nil {
		config = DefaultConfig()
	}
	if !config.Enabled {
		return &Collector{enabled: false}
	}

	c := &Collector{
		enabled:  true,
		registry: prometheus.NewRegistry(),
	}
	c.initPrometheusMetrics(config.Namespace, config.Subsystem)
	return c
}

func (c *Collector) initPrometheusMetrics(namespace, subsystem string) {
	c.linesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "lines_total",
		Help:      "Input lines by classifier category",
	}, []string{"category"})

	c.parseMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "parse_misses_total",
		Help:      "Classified lines whose field pattern did not match",
	}, []string{"field"})

	c.limitViolations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "limit_violations_total",
		Help:      "RTCP bandwidth limit violations",
	}, []string{"limit"})

	c.rtpBandwidth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rtp_bandwidth_kbps",
		Help:      "Permitted RTP bandwidth per direction",
	}, []string{"direction"})

	c.rtcpBandwidth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rtcp_bandwidth_bps",
		Help:      "Resolved RTCP bandwidth per direction and component",
	}, []string{"direction", "component"})

	c.uplinkTotal = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "uplink_total_kbps",
		Help:      "Total uplink bandwidth (RTP + RTCP) per direction",
	}, []string{"direction"})

	c.registry.MustRegister(
		c.linesTotal,
		c.parseMisses,
		c.limitViolations,
		c.rtpBandwidth,
		c.rtcpBandwidth,
		c.uplinkTotal,
	)
}

func (c *Collector) active() bool {
	return c != nil && c.enabled
}

// ObserveLine учитывает классифицированную строку
func (c *Collector) ObserveLine(category string) {
	if !c.active() {
		return
	}
	c.linesTotal.WithLabelValues(category).Inc()
}

// ObserveMiss учитывает строку, не совпавшую с шаблоном извлечения
func (c *Collector) ObserveMiss(field string) {
	if !c.active() {
		return
	}
	c.parseMisses.WithLabelValues(field).Inc()
}

// ObserveBandwidth фиксирует рассчитанную полосу направления
func (c *Collector) ObserveBandwidth(direction string, bw bandwidth.Bandwidth) {
	if !c.active() {
		return
	}
	c.rtpBandwidth.WithLabelValues(direction).Set(float64(bw.RTP))
	c.rtcpBandwidth.WithLabelValues(direction, "rs").Set(float64(bw.RS))
	c.rtcpBandwidth.WithLabelValues(direction, "rr").Set(float64(bw.RR))
	c.rtcpBandwidth.WithLabelValues(direction, "total").Set(float64(bw.RTCP))
	c.uplinkTotal.WithLabelValues(direction).Set(bw.TotalUplinkKbps())
}

// ObserveLimitViolation учитывает нарушение лимита ("rs" или "rr")
func (c *Collector) ObserveLimitViolation(limit string) {
	if !c.active() {
		return
	}
	c.limitViolations.WithLabelValues(limit).Inc()
}

// Registry возвращает реестр метрик (nil для выключенного сборщика)
func (c *Collector) Registry() *prometheus.Registry {
	if !c.active() {
		return nil
	}
	return c.registry
}

// WriteTextfile атомарно записывает метрики в файл в текстовом формате
func (c *Collector) WriteTextfile(path string) error {
	if !c.active() {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
