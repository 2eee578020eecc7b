package errors

import (
	"errors"
	"fmt"
	"lexchange/pkg/errors/ecode"
)

// 带业务错误码的error，DecodeErr用它生成响应的code和message

type codeError struct {
	code  int
	msg   string
	cause error
}

func (e *codeError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *codeError) Unwrap() error {
	return e.cause
}

// WithCode 创建一个带错误码的error
func WithCode(code int, format string, args ...interface{}) error {
	return &codeError{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装已有error并附加错误码和提示
func Wrap(err error, code int, msg string) error {
	return &codeError{code: code, msg: msg, cause: err}
}

// Wrapf 同Wrap，带格式化
func Wrapf(err error, code int, format string, args ...interface{}) error {
	return &codeError{code: code, msg: fmt.Sprintf(format, args...), cause: err}
}

// DecodeErr 从error中取出错误码和提示信息，用于构造api响应
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code, ce.msg
	}
	return ecode.Unknown, err.Error()
}

// Code 只取错误码
func Code(err error) int {
	code, _ := DecodeErr(err)
	return code
}

// Is 透传标准库的errors.Is，省得调用方引两个errors包
func Is(err, target error) bool {
	return errors.Is(err, target)
}
