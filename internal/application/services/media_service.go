package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/easayliu/media-gallery/internal/application/contracts"
	"github.com/easayliu/media-gallery/internal/infrastructure/cache"
	"github.com/easayliu/media-gallery/internal/infrastructure/cloudinary"
	errs "github.com/easayliu/media-gallery/internal/shared/errors"
	"github.com/easayliu/media-gallery/pkg/logger"
	pathutil "github.com/easayliu/media-gallery/pkg/utils/path"
)

// 缓存命名空间
const (
	TypesNamespace  = "CloudinaryTypes"
	ImagesNamespace = "CloudinaryImages"
)

const (
	DefaultMaxAge     = 7 * 24 * time.Hour
	DefaultMaxResults = 50
)

// AssetClient 媒体库客户端,由 cloudinary.Client 实现
type AssetClient interface {
	ListSubfolders(ctx context.Context, root string) (*cloudinary.FoldersResponse, error)
	ListResources(ctx context.Context, req cloudinary.ResourcesRequest) (*cloudinary.ResourcesResponse, error)
}

// MediaServiceOptions 媒体服务配置
type MediaServiceOptions struct {
	RootFolder       string
	MaxResults       int
	ServerSidePrefix bool
	MaxAge           time.Duration
	RefreshTimeout   time.Duration
	Store            cache.Store
	Now              func() time.Time
}

type imagesQuery struct {
	Key    string
	Cursor string
}

func imagesCacheKey(q imagesQuery) string {
	return q.Key + "/" + q.Cursor
}

// MediaService 带缓存的媒体查询服务
type MediaService struct {
	client           AssetClient
	root             string
	maxResults       int
	serverSidePrefix bool

	shouldDoGetTypes *cache.Invalidator
	shouldGetImages  *cache.Invalidator

	types  *cache.Function[string, []contracts.FolderInfo]
	images *cache.Function[imagesQuery, []contracts.ImageInfo]
}

var _ contracts.MediaService = (*MediaService)(nil)

// NewMediaService 创建媒体服务
// 两个失效标记初始均为dirty,进程启动后的第一次访问总会请求上游
func NewMediaService(client AssetClient, opts MediaServiceOptions) *MediaService {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultMaxAge
	}

	s := &MediaService{
		client:           client,
		root:             opts.RootFolder,
		maxResults:       opts.MaxResults,
		serverSidePrefix: opts.ServerSidePrefix,
		shouldDoGetTypes: cache.NewInvalidator("shouldDoGetTypes", true),
		shouldGetImages:  cache.NewInvalidator("shouldGetImages", true),
	}

	s.types = cache.NewFunction(s.fetchTypes, cache.StringKey, cache.Options{
		Name:           TypesNamespace,
		MaxAge:         opts.MaxAge,
		RefreshTimeout: opts.RefreshTimeout,
		Store:          opts.Store,
		Invalidator:    s.shouldDoGetTypes,
		Now:            opts.Now,
	})
	s.images = cache.NewFunction(s.fetchImages, imagesCacheKey, cache.Options{
		Name:           ImagesNamespace,
		MaxAge:         opts.MaxAge,
		SWR:            true,
		RefreshTimeout: opts.RefreshTimeout,
		Store:          opts.Store,
		Invalidator:    s.shouldGetImages,
		Now:            opts.Now,
	})
	return s
}

// GetTypes 列出分类
func (s *MediaService) GetTypes(ctx context.Context, key string) ([]contracts.FolderInfo, error) {
	if key == "" {
		key = contracts.AllTypesKey
	}
	return s.types.Get(ctx, key)
}

// GetImages 列出一页图片
// 缓存key使用原始key,去空白只影响上游查询和过滤
func (s *MediaService) GetImages(ctx context.Context, key, cursor string) ([]contracts.ImageInfo, error) {
	return s.images.Get(ctx, imagesQuery{Key: key, Cursor: cursor})
}

// Invalidate 标记缓存失效
func (s *MediaService) Invalidate(target contracts.InvalidationTarget) error {
	switch target {
	case contracts.InvalidateTypes:
		s.shouldDoGetTypes.MarkDirty()
	case contracts.InvalidateImages:
		s.shouldGetImages.MarkDirty()
	case contracts.InvalidateAll:
		s.shouldDoGetTypes.MarkDirty()
		s.shouldGetImages.MarkDirty()
	default:
		return errs.NewServiceErrorWithDetails(errs.ErrorCodeInvalidRequest,
			"unknown invalidation target",
			map[string]interface{}{"target": string(target), "allowed": []string{"types", "images", "all"}})
	}
	logger.Info("Cache invalidated", "target", string(target))
	return nil
}

// CacheStats 各命名空间的缓存状态
func (s *MediaService) CacheStats() []contracts.CacheStats {
	return []contracts.CacheStats{
		toCacheStats(s.types.Name(), s.shouldDoGetTypes.IsDirty(), s.types.Stats()),
		toCacheStats(s.images.Name(), s.shouldGetImages.IsDirty(), s.images.Stats()),
	}
}

func toCacheStats(namespace string, dirty bool, snap cache.StatsSnapshot) contracts.CacheStats {
	stats := contracts.CacheStats{
		Namespace:     namespace,
		Dirty:         dirty,
		Hits:          snap.Hits,
		Misses:        snap.Misses,
		StaleHits:     snap.StaleHits,
		Refreshes:     snap.Refreshes,
		RefreshErrors: snap.RefreshErrors,
		LastRefresh:   snap.LastRefresh,
	}
	if !snap.LastRefresh.IsZero() {
		stats.LastRefreshHuman = humanize.Time(snap.LastRefresh)
	}
	return stats
}

// fetchTypes 请求上游并过滤分类
func (s *MediaService) fetchTypes(ctx context.Context, key string) ([]contracts.FolderInfo, error) {
	resp, err := s.client.ListSubfolders(ctx, s.root)
	if err != nil {
		logger.Error("Failed to list cloudinary folders", "root", s.root, "error", err)
		return nil, errs.NewUpstreamError(err)
	}

	result := make([]contracts.FolderInfo, 0)
	if resp != nil {
		for _, folder := range resp.Folders {
			if key != "" && key != contracts.AllTypesKey && !strings.EqualFold(folder.Name, key) {
				continue
			}
			result = append(result, contracts.FolderInfo{Name: folder.Name, Path: folder.Path})
		}
	}

	s.shouldDoGetTypes.Clear()
	logger.Debug("Fetched cloudinary folders", "key", key, "count", len(result))
	return result, nil
}

// fetchImages 请求一页资源,在本地按分类过滤
// 默认不把key传给上游,一页50条过滤后可能少于实际数量;开启server_side_prefix后由上游按前缀过滤
func (s *MediaService) fetchImages(ctx context.Context, q imagesQuery) ([]contracts.ImageInfo, error) {
	key := strings.TrimSpace(q.Key)
	folderPath := pathutil.JoinRemote(s.root, key)

	req := cloudinary.ResourcesRequest{
		MaxResults: s.maxResults,
		NextCursor: q.Cursor,
	}
	if key != "" && s.serverSidePrefix {
		req.Prefix = folderPath + "/"
	}

	resp, err := s.client.ListResources(ctx, req)
	if err != nil {
		logger.Error("Failed to list cloudinary resources", "key", key, "cursor", q.Cursor, "error", err)
		return nil, errs.NewUpstreamError(err)
	}

	result := make([]contracts.ImageInfo, 0)
	if resp != nil {
		for _, res := range resp.Resources {
			if key != "" && res.Folder != folderPath {
				continue
			}
			info, err := toImageInfo(res)
			if err != nil {
				logger.Error("Unexpected cloudinary resource shape", "folder", res.Folder, "error", err)
				return nil, errs.NewUpstreamError(err)
			}
			result = append(result, info)
		}
	}

	s.shouldGetImages.Clear()
	logger.Debug("Fetched cloudinary resources", "key", key, "cursor", q.Cursor, "count", len(result))
	return result, nil
}

// toImageInfo folder取第二段(root之后的分类名),name取public_id最后一段
func toImageInfo(res cloudinary.Resource) (contracts.ImageInfo, error) {
	if res.PublicID == "" {
		return contracts.ImageInfo{}, fmt.Errorf("resource in folder %q has no public_id", res.Folder)
	}
	if res.Folder == "" {
		return contracts.ImageInfo{}, fmt.Errorf("resource %q has no folder", res.PublicID)
	}
	return contracts.ImageInfo{
		SecureURL: res.SecureURL,
		URL:       res.URL,
		Height:    res.Height,
		Width:     res.Width,
		Folder:    pathutil.Segment(res.Folder, 1),
		Name:      pathutil.LastSegment(res.PublicID),
	}, nil
}
