package sdp_parser

import (
	"errors"
	"fmt"
)

// ParseErrorCode определяет коды ошибок разбора
type ParseErrorCode int

const (
	ErrorCodeInvalidConfig ParseErrorCode = iota + 4000
	ErrorCodeUnexpectedSession
	ErrorCodeIncompleteInput
	ErrorCodeReadFailed
)

// ParseError ошибка разбора входного файла
type ParseError struct {
	Code    ParseErrorCode
	Message string
	Line    int // Номер строки (фрагмента), 0 если не применимо
	Wrapped error
}

// NewParseError создает новую ошибку разбора
func NewParseError(code ParseErrorCode, line int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

// WrapParseError оборачивает существующую ошибку в ParseError
func WrapParseError(code ParseErrorCode, line int, err error, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Wrapped: err,
	}
}

// Error реализует интерфейс error
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap возвращает обернутую ошибку для поддержки errors.Is/As
func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// IsParseError проверяет, является ли ошибка ParseError с указанным кодом
func IsParseError(err error, code ParseErrorCode) bool {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return false
	}
	return parseErr.Code == code
}
