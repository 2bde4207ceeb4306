package container

import (
	"context"
	"fmt"
	"time"

	"github.com/easayliu/media-gallery/internal/application/contracts"
	"github.com/easayliu/media-gallery/internal/application/services"
	"github.com/easayliu/media-gallery/internal/infrastructure/cache"
	"github.com/easayliu/media-gallery/internal/infrastructure/cloudinary"
	"github.com/easayliu/media-gallery/internal/infrastructure/config"
	"github.com/easayliu/media-gallery/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer 服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	// 基础设施
	client      *cloudinary.Client
	store       cache.Store
	redisClient *redis.Client

	// 应用层服务实例
	mediaService     *services.MediaService
	schedulerService *services.SchedulerService
}

// Option 用于测试时替换基础设施
type Option func(*ServiceContainer)

// WithStore 使用外部提供的缓存存储
func WithStore(store cache.Store) Option {
	return func(c *ServiceContainer) {
		c.store = store
	}
}

// NewServiceContainer 创建服务容器
// redis后端连接失败时返回错误
func NewServiceContainer(cfg *config.Config, opts ...Option) (*ServiceContainer, error) {
	c := &ServiceContainer{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	logger.Info("Initializing service container", "cache_backend", cfg.Cache.Backend)

	// 1. 初始化基础设施层
	c.client = cloudinary.NewClient(cloudinary.Options{
		BaseURL:   cfg.Cloudinary.BaseURL,
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		QPS:       cfg.Cloudinary.QPS,
		Timeout:   cfg.Cloudinary.Timeout,
	})

	if c.store == nil {
		store, err := c.newStore()
		if err != nil {
			_ = c.client.Close()
			return nil, err
		}
		c.store = store
	}

	// 2. 初始化应用层服务
	c.mediaService = services.NewMediaService(c.client, services.MediaServiceOptions{
		RootFolder:       cfg.Cloudinary.RootFolder,
		MaxResults:       cfg.Cloudinary.MaxResults,
		ServerSidePrefix: cfg.Cloudinary.ServerSidePrefix,
		MaxAge:           cfg.Cache.MaxAge,
		RefreshTimeout:   cfg.Cache.RefreshTimeout,
		Store:            c.store,
	})

	var tasks []config.InvalidationTask
	if cfg.Scheduler.Enabled {
		tasks = cfg.Scheduler.Tasks
	}
	c.schedulerService = services.NewSchedulerService(c.mediaService, tasks)

	logger.Info("Service container initialized successfully")
	return c, nil
}

func (c *ServiceContainer) newStore() (cache.Store, error) {
	switch c.config.Cache.Backend {
	case "redis":
		redisCfg := c.config.Cache.Redis
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		store := cache.NewRedisStore(c.redisClient, redisCfg.Prefix, redisCfg.Retention)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = c.redisClient.Close()
			c.redisClient = nil
			return nil, fmt.Errorf("failed to connect redis %s: %w", redisCfg.Addr, err)
		}
		logger.Info("Using redis cache store", "addr", redisCfg.Addr, "prefix", redisCfg.Prefix)
		return store, nil
	default:
		logger.Info("Using in-memory cache store")
		return cache.NewMemoryStore(), nil
	}
}

// GetMediaService 获取媒体服务实例
func (c *ServiceContainer) GetMediaService() contracts.MediaService {
	return c.mediaService
}

// GetSchedulerService 获取调度服务实例
func (c *ServiceContainer) GetSchedulerService() *services.SchedulerService {
	return c.schedulerService
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// Start 启动后台服务
func (c *ServiceContainer) Start() error {
	if !c.config.Scheduler.Enabled {
		return nil
	}
	if err := c.schedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	return nil
}

// Shutdown 关闭服务容器
func (c *ServiceContainer) Shutdown() {
	logger.Info("Shutting down service container")

	if c.schedulerService != nil {
		c.schedulerService.Stop()
	}
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			logger.Warn("Failed to close cloudinary client", "error", err)
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}

	logger.Info("Service container shutdown completed")
}

// GetServiceHealth 获取服务健康状态
func (c *ServiceContainer) GetServiceHealth(ctx context.Context) map[string]interface{} {
	health := map[string]interface{}{
		"container": "healthy",
		"services": map[string]interface{}{
			"media_service":     c.getServiceStatus(c.mediaService != nil),
			"scheduler_service": c.getServiceStatus(c.schedulerService != nil),
			"cache_store":       c.storeStatus(ctx),
		},
		"cache_backend": c.config.Cache.Backend,
	}
	if c.client != nil {
		health["cloudinary_qps"] = c.client.QPS()
	}
	if c.schedulerService != nil {
		health["scheduler_running"] = c.schedulerService.IsRunning()
	}
	return health
}

func (c *ServiceContainer) storeStatus(ctx context.Context) string {
	pinger, ok := c.store.(interface{ Ping(context.Context) error })
	if !ok {
		return c.getServiceStatus(c.store != nil)
	}
	if err := pinger.Ping(ctx); err != nil {
		logger.Warn("Cache store health check failed", "error", err)
		return "unhealthy"
	}
	return "healthy"
}

func (c *ServiceContainer) getServiceStatus(ok bool) string {
	if ok {
		return "healthy"
	}
	return "not_initialized"
}
