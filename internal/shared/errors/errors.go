package errors

import (
	stderrors "errors"
)

// ErrorCode 业务错误码
type ErrorCode string

const (
	ErrorCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
	ErrorCodeUpstreamFailure ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeTimeout         ErrorCode = "TIMEOUT"
	ErrorCodeRateLimit       ErrorCode = "RATE_LIMIT"
)

// MessageUpstreamFailure 媒体库调用失败时返回给调用方的统一提示
const MessageUpstreamFailure = "Error getting image details!"

// ServiceError 业务错误
type ServiceError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError 创建业务错误
func NewServiceError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithCause 创建带原因的业务错误
func NewServiceErrorWithCause(code ErrorCode, message string, cause error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewServiceErrorWithDetails 创建带详情的业务错误
func NewServiceErrorWithDetails(code ErrorCode, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewUpstreamError 上游调用失败和响应结构异常统一使用该错误,调用方无法区分二者
func NewUpstreamError(cause error) *ServiceError {
	return NewServiceErrorWithCause(ErrorCodeUpstreamFailure, MessageUpstreamFailure, cause)
}

// AsServiceError 从错误链中提取ServiceError
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCode 判断错误链中是否包含指定错误码
func IsCode(err error, code ErrorCode) bool {
	se, ok := AsServiceError(err)
	return ok && se.Code == code
}
