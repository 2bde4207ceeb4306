package handlers

import (
	"github.com/easayliu/media-gallery/internal/application/container"
	"github.com/easayliu/media-gallery/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// LookupContainer 从gin.Context中获取ServiceContainer
// 需要先通过ContainerMiddleware注入
func LookupContainer(c *gin.Context) (*container.ServiceContainer, bool) {
	v, exists := c.Get(middleware.ContainerKey)
	if !exists {
		return nil, false
	}
	sc, ok := v.(*container.ServiceContainer)
	return sc, ok && sc != nil
}
