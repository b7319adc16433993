package bandwidth

// MaxAddressLength максимальная длина адреса соединения в байтах
const MaxAddressLength = 63

// Endpoint описывает медиа точку одной стороны сессии
type Endpoint struct {
	Address string // Текстовый IPv6 адрес из c= строки
	Port    int    // Порт из m=audio строки

	// Транспорт и форматы из m= строки (используются только при выводе SDP)
	Protos  []string
	Formats []string
}

// Rate опциональное целое значение полосы.
// Позволяет отличить отсутствующую b= строку от явного нуля.
type Rate struct {
	Value int
	Set   bool
}

// NewRate создает заданное значение полосы
func NewRate(value int) Rate {
	return Rate{Value: value, Set: true}
}

// IsSet проверяет, было ли значение задано во входных данных
func (r Rate) IsSet() bool {
	return r.Set
}

// Or возвращает значение или def, если оно не задано
func (r Rate) Or(def int) int {
	if !r.Set {
		return def
	}
	return r.Value
}

// Rates накопители полосы одной сессии
type Rates struct {
	AS Rate // b=AS, kbps
	RS Rate // b=RS, bps
	RR Rate // b=RR, bps
}

// Bandwidth разрешенная полоса для одного направления (Local -> Remote)
type Bandwidth struct {
	Local  Endpoint
	Remote Endpoint

	RTP  int // kbps
	RS   int // RTCP отправителя, bps
	RR   int // RTCP получателя, bps
	RTCP int // RS + RR, bps

	// RSDerived и RRDerived отмечают значения, вычисленные по RFC 3556
	RSDerived bool
	RRDerived bool
}

// TotalUplinkKbps возвращает суммарную полосу RTP + RTCP в kbps
func (b Bandwidth) TotalUplinkKbps() float64 {
	return float64(b.RTP) + float64(b.RTCP)/1000
}
