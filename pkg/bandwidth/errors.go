package bandwidth

import (
	"errors"
	"fmt"
)

// ErrorCode коды ошибок расчета полосы
type ErrorCode int

const (
	ErrorCodeInvalidConfig ErrorCode = iota + 3000
	ErrorCodeSenderLimitExceeded
	ErrorCodeReceiverLimitExceeded
)

// String возвращает строковое представление кода ошибки
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeInvalidConfig:
		return "InvalidConfig"
	case ErrorCodeSenderLimitExceeded:
		return "SenderLimitExceeded"
	case ErrorCodeReceiverLimitExceeded:
		return "ReceiverLimitExceeded"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Error ошибка расчета полосы.
// Для нарушений лимита заполнены Limit и Value.
type Error struct {
	Code    ErrorCode
	Message string
	Limit   int
	Value   int
}

// NewError создает новую ошибку расчета
func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func newLimitError(code ErrorCode, role string, limit, value int) *Error {
	err := NewError(code, "RTCP %s bandwidth exceeds the limit of %d bps", role, limit)
	err.Limit = limit
	err.Value = value
	return err
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	return e.Message
}

// IsError проверяет, является ли ошибка ошибкой расчета с указанным кодом
func IsError(err error, code ErrorCode) bool {
	var bwErr *Error
	if !errors.As(err, &bwErr) {
		return false
	}
	return bwErr.Code == code
}
