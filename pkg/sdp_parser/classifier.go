package sdp_parser

import "strings"

// LineCategory категория входной строки
type LineCategory int

const (
	LineIgnored LineCategory = iota
	LineVersion
	LineConnection
	LineMedia
	LineBandwidthAS
	LineBandwidthRS
	LineBandwidthRR
)

var lineCategoryNames = map[LineCategory]string{
	LineIgnored:     "ignored",
	LineVersion:     "version",
	LineConnection:  "connection",
	LineMedia:       "media",
	LineBandwidthAS: "bandwidth_as",
	LineBandwidthRS: "bandwidth_rs",
	LineBandwidthRR: "bandwidth_rr",
}

func (c LineCategory) String() string {
	if name, ok := lineCategoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Classify определяет категорию строки по литеральному префиксу.
// Порядок проверки: v=0, c=, m=, затем b=AS:, b=RS:, b=RR:.
func Classify(line string) LineCategory {
	switch {
	case strings.HasPrefix(line, "v=0"):
		return LineVersion
	case strings.HasPrefix(line, "c="):
		return LineConnection
	case strings.HasPrefix(line, "m="):
		return LineMedia
	case strings.HasPrefix(line, "b="+string(BandwidthAS)+":"):
		return LineBandwidthAS
	case strings.HasPrefix(line, "b="+string(BandwidthRS)+":"):
		return LineBandwidthRS
	case strings.HasPrefix(line, "b="+string(BandwidthRR)+":"):
		return LineBandwidthRR
	default:
		return LineIgnored
	}
}
