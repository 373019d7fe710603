package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError 帶有錯誤種類的應用層錯誤，Cause 保留底層原因但不會序列化給客戶端
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidArg(msg string) error {
	return New(CodeInvalidArgument, msg)
}

func NotFound(msg string) error {
	return New(CodeNotFound, msg)
}

func AlreadyExists(msg string) error {
	return New(CodeAlreadyExists, msg)
}

func Internal(msg string) error {
	return New(CodeInternal, msg)
}

// CodeOf 取出錯誤的種類；非 AppError 一律視為 INTERNAL
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound 判斷錯誤是否為 NOT_FOUND
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
