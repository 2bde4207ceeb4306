package middleware

import (
	"net/http"
	"runtime/debug"

	errs "github.com/easayliu/media-gallery/internal/shared/errors"
	"github.com/easayliu/media-gallery/pkg/logger"
	"github.com/easayliu/media-gallery/pkg/utils"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中设置的错误,自动转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		// 根据错误类型返回不同的HTTP状态码
		if serviceErr, ok := errs.AsServiceError(err); ok {
			statusCode := mapErrorCodeToHTTPStatus(serviceErr.Code)
			if statusCode >= http.StatusInternalServerError {
				logger.Error("Request failed",
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"code", serviceErr.Code,
					"error", err)
			}
			utils.Fail(c, statusCode, utils.ErrorResponse{
				Error:     serviceErr.Message,
				Code:      string(serviceErr.Code),
				Details:   serviceErr.Details,
				RequestID: GetRequestID(c),
			})
			return
		}

		// 未知错误,返回500
		logger.Error("Unhandled request error", "request_id", GetRequestID(c), "path", c.Request.URL.Path, "error", err)
		utils.Fail(c, http.StatusInternalServerError, utils.ErrorResponse{
			Error:     "Internal server error",
			Code:      string(errs.ErrorCodeInternalError),
			RequestID: GetRequestID(c),
		})
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code errs.ErrorCode) int {
	switch code {
	case errs.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case errs.ErrorCodeNotFound:
		return http.StatusNotFound
	case errs.ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"panic", err,
					"stack", string(debug.Stack()))
				utils.Fail(c, http.StatusInternalServerError, utils.ErrorResponse{
					Error:     "Internal server error",
					Code:      string(errs.ErrorCodeInternalError),
					RequestID: GetRequestID(c),
				})
			}
		}()
		c.Next()
	}
}
