package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 成功响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Code      string                 `json:"code"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Fail 错误响应,写入后中止后续handler
func Fail(c *gin.Context, httpStatus int, resp ErrorResponse) {
	c.AbortWithStatusJSON(httpStatus, resp)
}
