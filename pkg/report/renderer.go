// Package report формирует вывод sdpbw для двух рассчитанных направлений.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
)

// Format формат вывода отчета
type Format string

const (
	FormatText Format = "text"
	FormatSDP  Format = "sdp"
)

// Formats возвращает поддерживаемые форматы
func Formats() []Format {
	return []Format{FormatText, FormatSDP}
}

// ParseFormat разбирает имя формата без учета регистра
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Formats() {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("неизвестный формат вывода %q (доступны: text, sdp)", name)
}

// Renderer выводит отчет по двум направлениям.
// flows[0] - local -> remote, flows[1] - remote -> local.
type Renderer interface {
	Render(w io.Writer, flows [2]bandwidth.Bandwidth) error
}

// NewRenderer создает Renderer для формата
func NewRenderer(format Format) (Renderer, error) {
	switch format {
	case FormatText:
		return textRenderer{}, nil
	case FormatSDP:
		return sdpRenderer{}, nil
	default:
		return nil, fmt.Errorf("неизвестный формат вывода %q", format)
	}
}

// writeAll пишет отчет одним вызовом, чтобы частичный вывод не попадал в w
func writeAll(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("не удалось записать отчет: %w", err)
	}
	return nil
}
