// Package bandwidth рассчитывает разрешенную полосу RTP/RTCP для одного
// направления медиа потока.
//
// Доли RTCP по умолчанию взяты из RFC 3556: 1.25% сессионной полосы для
// отправителей (RS) и 3.75% для получателей (RR). Вычисленные значения
// ограничены сверху лимитами SenderLimit и ReceiverLimit.
package bandwidth

const (
	DefaultSenderShare   = 0.0125 // RFC 3556, RS
	DefaultReceiverShare = 0.0375 // RFC 3556, RR
	DefaultSenderLimit   = 4000   // bps
	DefaultReceiverLimit = 5000   // bps
)

// Config параметры расчета полосы
type Config struct {
	SenderShare   float64 // Доля RTP полосы для RS
	ReceiverShare float64 // Доля RTP полосы для RR
	SenderLimit   int     // Максимум RS, bps
	ReceiverLimit int     // Максимум RR, bps

	// ZeroMeansAbsent считает явное b=RS:0 / b=RR:0 отсутствующим значением
	ZeroMeansAbsent bool
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		SenderShare:     DefaultSenderShare,
		ReceiverShare:   DefaultReceiverShare,
		SenderLimit:     DefaultSenderLimit,
		ReceiverLimit:   DefaultReceiverLimit,
		ZeroMeansAbsent: true,
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.SenderShare <= 0 || c.SenderShare >= 1 {
		return NewError(ErrorCodeInvalidConfig, "SenderShare должен быть в интервале (0, 1): %v", c.SenderShare)
	}
	if c.ReceiverShare <= 0 || c.ReceiverShare >= 1 {
		return NewError(ErrorCodeInvalidConfig, "ReceiverShare должен быть в интервале (0, 1): %v", c.ReceiverShare)
	}
	if c.SenderLimit <= 0 {
		return NewError(ErrorCodeInvalidConfig, "SenderLimit должен быть больше 0")
	}
	if c.ReceiverLimit <= 0 {
		return NewError(ErrorCodeInvalidConfig, "ReceiverLimit должен быть больше 0")
	}
	return nil
}

// Calculator вычисляет Bandwidth для направления
type Calculator struct {
	config Config
}

// NewCalculator создает калькулятор с проверкой конфигурации
func NewCalculator(config Config) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{config: config}, nil
}

// Calculate собирает Bandwidth направления local -> remote из накопителей
// сессии local. Недостающие RS/RR выводятся из RTP полосы, затем
// проверяются лимиты.
func (c *Calculator) Calculate(local, remote Endpoint, rates Rates) (Bandwidth, error) {
	bw := Bandwidth{
		Local:  local,
		Remote: remote,
		RTP:    rates.AS.Or(0),
		RS:     rates.RS.Or(0),
		RR:     rates.RR.Or(0),
	}

	if c.absent(rates.RS) {
		bw.RS = c.share(c.config.SenderShare, bw.RTP)
		bw.RSDerived = true
	}
	if c.absent(rates.RR) {
		bw.RR = c.share(c.config.ReceiverShare, bw.RTP)
		bw.RRDerived = true
	}

	if bw.RS > c.config.SenderLimit {
		return bw, newLimitError(ErrorCodeSenderLimitExceeded, "sender", c.config.SenderLimit, bw.RS)
	}
	if bw.RR > c.config.ReceiverLimit {
		return bw, newLimitError(ErrorCodeReceiverLimitExceeded, "receiver", c.config.ReceiverLimit, bw.RR)
	}

	bw.RTCP = bw.RS + bw.RR
	return bw, nil
}

func (c *Calculator) absent(r Rate) bool {
	if !r.IsSet() {
		return true
	}
	return c.config.ZeroMeansAbsent && r.Value == 0
}

// share переводит kbps в bps и отбрасывает дробную часть
func (c *Calculator) share(fraction float64, rtpKbps int) int {
	return int(fraction * float64(rtpKbps) * 1000)
}
