package model

import (
	"fmt"
	"net/http"

	"github.com/go-kratos/kratos/v2/errors"
)

// 错误原因，对应四类错误
const (
	ReasonValidation = "VALIDATION_ERROR"
	ReasonProvider   = "PROVIDER_ERROR"
	ReasonMalformed  = "MALFORMED_RESPONSE"
	ReasonFileRead   = "FILE_READ_ERROR"
)

// ErrorValidation 输入校验失败，发生在任何网络调用之前
func ErrorValidation(format string, args ...any) *errors.Error {
	return errors.BadRequest(ReasonValidation, fmt.Sprintf(format, args...))
}

// ErrorProvider 传输层失败或服务商返回的错误
func ErrorProvider(message string) *errors.Error {
	return errors.New(http.StatusBadGateway, ReasonProvider, message)
}

// ErrorMalformed 传输成功但返回内容不是合法报告
func ErrorMalformed(message string) *errors.Error {
	return errors.New(http.StatusBadGateway, ReasonMalformed, message)
}

// ErrorFileRead 本地文件读取失败
func ErrorFileRead(message string) *errors.Error {
	return errors.BadRequest(ReasonFileRead, message)
}

func IsValidation(err error) bool { return errors.Reason(err) == ReasonValidation }

func IsProvider(err error) bool { return errors.Reason(err) == ReasonProvider }

func IsMalformed(err error) bool { return errors.Reason(err) == ReasonMalformed }

func IsFileRead(err error) bool { return errors.Reason(err) == ReasonFileRead }
