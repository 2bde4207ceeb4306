package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 健康检查
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"message": "Media gallery service is running",
	}
	if container, ok := LookupContainer(c); ok {
		resp["components"] = container.GetServiceHealth(c.Request.Context())
	}
	c.JSON(http.StatusOK, resp)
}
