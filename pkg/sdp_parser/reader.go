package sdp_parser

import (
	"bufio"
	"bytes"
)

// splitChunks возвращает bufio.SplitFunc, который отдает строки вместе с
// '\n', но не длиннее maxLen-1 байт. Остаток длинной строки становится
// следующим фрагментом.
func splitChunks(maxLen int) bufio.SplitFunc {
	limit := maxLen - 1
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		window := data
		if len(window) > limit {
			window = window[:limit]
		}
		if i := bytes.IndexByte(window, '\n'); i >= 0 {
			return i + 1, data[:i+1], nil
		}
		if len(data) >= limit {
			return limit, data[:limit], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
