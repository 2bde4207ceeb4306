package handlers

import (
	"github.com/easayliu/media-gallery/internal/application/contracts"
	"github.com/easayliu/media-gallery/internal/application/dto"
	errs "github.com/easayliu/media-gallery/internal/shared/errors"
	"github.com/easayliu/media-gallery/pkg/utils"
	"github.com/gin-gonic/gin"
)

// MediaHandler 媒体查询处理器
type MediaHandler struct {
	mediaService contracts.MediaService
}

// NewMediaHandler 创建媒体查询处理器
func NewMediaHandler(mediaService contracts.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// GetTypes 列出分类
// @Summary 列出分类
// @Description 列出root下的分类文件夹,key为空或all时返回全部,否则按名称忽略大小写匹配
// @Tags 媒体
// @Produce json
// @Param key query string false "分类名" default(all)
// @Success 200 {object} utils.Response{data=[]contracts.FolderInfo}
// @Failure 500 {object} map[string]interface{}
// @Router /types [get]
func (h *MediaHandler) GetTypes(c *gin.Context) {
	types, err := h.mediaService.GetTypes(c.Request.Context(), c.Query("key"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, types)
}

// GetImages 列出一页图片
// @Summary 列出图片
// @Description 列出一页图片,key非空时只返回该分类下的图片;过期数据先返回旧值并在后台刷新
// @Tags 媒体
// @Produce json
// @Param key query string false "分类名"
// @Param cursor query string false "分页游标"
// @Success 200 {object} utils.Response{data=[]contracts.ImageInfo}
// @Failure 500 {object} map[string]interface{}
// @Router /images [get]
func (h *MediaHandler) GetImages(c *gin.Context) {
	images, err := h.mediaService.GetImages(c.Request.Context(), c.Query("key"), c.Query("cursor"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, images)
}

// InvalidateCache 手动失效缓存
// @Summary 失效缓存
// @Description 标记缓存失效,下一次访问强制请求上游
// @Tags 缓存
// @Accept json
// @Produce json
// @Param request body dto.InvalidateCacheRequest true "失效目标"
// @Success 200 {object} utils.Response{data=dto.InvalidateCacheResponse}
// @Failure 400 {object} map[string]interface{}
// @Router /cache/invalidate [post]
func (h *MediaHandler) InvalidateCache(c *gin.Context) {
	var req dto.InvalidateCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errs.NewServiceErrorWithCause(errs.ErrorCodeInvalidRequest, "invalid request body", err))
		return
	}

	if err := h.mediaService.Invalidate(contracts.InvalidationTarget(req.Target)); err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, dto.InvalidateCacheResponse{Target: req.Target})
}

// GetCacheStats 缓存状态
// @Summary 缓存状态
// @Description 各缓存命名空间的命中统计、失效标记和最近刷新时间
// @Tags 缓存
// @Produce json
// @Success 200 {object} utils.Response{data=dto.CacheStatsResponse}
// @Router /cache/stats [get]
func (h *MediaHandler) GetCacheStats(c *gin.Context) {
	utils.Success(c, dto.CacheStatsResponse{Namespaces: h.mediaService.CacheStats()})
}
