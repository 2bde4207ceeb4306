package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type CloudinaryConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	CloudName        string        `mapstructure:"cloud_name"`
	APIKey           string        `mapstructure:"api_key"`
	APISecret        string        `mapstructure:"api_secret"`
	RootFolder       string        `mapstructure:"root_folder"`
	MaxResults       int           `mapstructure:"max_results"`
	QPS              int           `mapstructure:"qps"` // 每秒请求数限制,0表示不限制
	Timeout          time.Duration `mapstructure:"timeout"`
	ServerSidePrefix bool          `mapstructure:"server_side_prefix"` // 列表请求是否携带prefix参数
}

type CacheConfig struct {
	Backend        string        `mapstructure:"backend"` // memory/redis
	MaxAge         time.Duration `mapstructure:"max_age"`
	RefreshTimeout time.Duration `mapstructure:"refresh_timeout"` // 单次上游刷新的超时时间(含SWR后台刷新)
	Redis          RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	Prefix    string        `mapstructure:"prefix"`
	Retention time.Duration `mapstructure:"retention"` // 0表示redis中条目永不过期
}

type SchedulerConfig struct {
	Enabled bool               `mapstructure:"enabled"`
	Tasks   []InvalidationTask `mapstructure:"tasks"`
}

type InvalidationTask struct {
	Name    string `mapstructure:"name"`    // 任务名称
	Enabled bool   `mapstructure:"enabled"` // 是否启用
	Cron    string `mapstructure:"cron"`    // cron表达式,如 "0 3 * * *" 每天凌晨3点
	Target  string `mapstructure:"target"`  // types/images/all
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

// EnvPrefix 环境变量前缀,如 MEDIA_CLOUDINARY_API_SECRET
const EnvPrefix = "MEDIA"

// LoadConfig 加载配置
// path为空时在 ./configs 和 . 下查找 config.yaml
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("cloudinary.base_url", "https://api.cloudinary.com")
	v.SetDefault("cloudinary.cloud_name", "")
	v.SetDefault("cloudinary.api_key", "")
	v.SetDefault("cloudinary.api_secret", "")
	v.SetDefault("cloudinary.root_folder", "everything-enterprise")
	v.SetDefault("cloudinary.max_results", 50)
	v.SetDefault("cloudinary.qps", 10)
	v.SetDefault("cloudinary.timeout", "30s")
	v.SetDefault("cloudinary.server_side_prefix", false)

	// 缓存默认7天
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.max_age", "168h")
	v.SetDefault("cache.refresh_timeout", "30s")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "media-gallery:")
	v.SetDefault("cache.redis.retention", "0s")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.tasks", []InvalidationTask{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "./logs/media-gallery.log")
	v.SetDefault("log.colorize", true)
	v.SetDefault("log.add_source", false)
}

// Validate 校验启动所需的配置
func (c *Config) Validate() error {
	if c.Cloudinary.CloudName == "" {
		return fmt.Errorf("cloudinary.cloud_name is required")
	}
	if c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
		return fmt.Errorf("cloudinary.api_key and cloudinary.api_secret are required")
	}
	if c.Cloudinary.RootFolder == "" {
		return fmt.Errorf("cloudinary.root_folder is required")
	}
	if c.Cloudinary.MaxResults <= 0 || c.Cloudinary.MaxResults > 500 {
		return fmt.Errorf("cloudinary.max_results must be between 1 and 500, got %d", c.Cloudinary.MaxResults)
	}
	if c.Cache.MaxAge <= 0 {
		return fmt.Errorf("cache.max_age must be positive")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache.backend: %s", c.Cache.Backend)
	}
	for _, task := range c.Scheduler.Tasks {
		switch task.Target {
		case "types", "images", "all":
		default:
			return fmt.Errorf("scheduler task %q has unknown target %q", task.Name, task.Target)
		}
	}
	return nil
}

// Address 服务监听地址
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}
