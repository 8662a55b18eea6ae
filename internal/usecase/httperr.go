package usecase

import (
	"errors"
	"fmt"
)

// Usecaseが返すエラー。handlerがStatusをそのままHTTPに写す。
// 404=存在しない（または存在を隠す） / 403=他人のリソース / 409=競合・不正遷移
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
