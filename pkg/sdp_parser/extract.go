package sdp_parser

import (
	"strconv"
	"strings"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
)

// BandwidthKind тип модификатора полосы в b= строке
type BandwidthKind string

const (
	BandwidthAS BandwidthKind = "AS"
	BandwidthRS BandwidthKind = "RS"
	BandwidthRR BandwidthKind = "RR"
)

const maxPort = 65535

// ParseConnection извлекает IPv6 адрес из строки вида "c=IN IP6 <address>".
// Адрес обрезается до bandwidth.MaxAddressLength байт. IP4 строки не совпадают.
func ParseConnection(line string) (string, bool) {
	ls := lineScanner{s: line}
	if !ls.literal("c=IN IP6 ") {
		return "", false
	}
	return ls.word(bandwidth.MaxAddressLength)
}

// ParsePort извлекает порт из строки вида "m=audio <port> [<proto> <fmt>...]".
// Протоколы и форматы заполняются, только если присутствуют в строке.
func ParsePort(line string) (port int, protos, formats []string, ok bool) {
	ls := lineScanner{s: line}
	if !ls.literal("m=audio ") {
		return 0, nil, nil, false
	}
	port, ok = ls.integer()
	if !ok || port < 0 || port > maxPort {
		return 0, nil, nil, false
	}

	// "<port>/<count>" - количество портов не используется
	if ls.peek() == '/' {
		ls.word(len(ls.s))
	}

	fields := strings.Fields(ls.rest())
	if len(fields) > 0 {
		protos = strings.Split(fields[0], "/")
		if len(fields) > 1 {
			formats = fields[1:]
		}
	}
	return port, protos, formats, true
}

// ParseBandwidth извлекает значение из строки "b=<kind>:<int>".
// Отрицательные и нечисловые значения не совпадают.
func ParseBandwidth(line string, kind BandwidthKind) (int, bool) {
	ls := lineScanner{s: line}
	if !ls.literal("b=" + string(kind) + ":") {
		return 0, false
	}
	value, ok := ls.integer()
	if !ok || value < 0 {
		return 0, false
	}
	return value, true
}

// lineScanner повторяет семантику sscanf: пробел в шаблоне совпадает с
// любым количеством пробельных символов, числа и слова пропускают
// ведущие пробелы.
type lineScanner struct {
	s   string
	pos int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (ls *lineScanner) skipSpace() {
	for ls.pos < len(ls.s) && isSpace(ls.s[ls.pos]) {
		ls.pos++
	}
}

func (ls *lineScanner) peek() byte {
	if ls.pos >= len(ls.s) {
		return 0
	}
	return ls.s[ls.pos]
}

func (ls *lineScanner) rest() string {
	return ls.s[ls.pos:]
}

func (ls *lineScanner) literal(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if isSpace(pattern[i]) {
			ls.skipSpace()
			continue
		}
		if ls.pos >= len(ls.s) || ls.s[ls.pos] != pattern[i] {
			return false
		}
		ls.pos++
	}
	return true
}

func (ls *lineScanner) word(max int) (string, bool) {
	ls.skipSpace()
	start := ls.pos
	for ls.pos < len(ls.s) && !isSpace(ls.s[ls.pos]) && ls.pos-start < max {
		ls.pos++
	}
	return ls.s[start:ls.pos], ls.pos > start
}

func (ls *lineScanner) integer() (int, bool) {
	ls.skipSpace()
	start := ls.pos
	if c := ls.peek(); c == '+' || c == '-' {
		ls.pos++
	}
	digits := ls.pos
	for ls.pos < len(ls.s) && ls.s[ls.pos] >= '0' && ls.s[ls.pos] <= '9' {
		ls.pos++
	}
	if ls.pos == digits {
		ls.pos = start
		return 0, false
	}
	value, err := strconv.Atoi(ls.s[start:ls.pos])
	if err != nil {
		return 0, false
	}
	return value, true
}
