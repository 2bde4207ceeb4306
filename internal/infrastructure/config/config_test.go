package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "everything-enterprise", cfg.Cloudinary.RootFolder)
	assert.Equal(t, 50, cfg.Cloudinary.MaxResults)
	assert.Equal(t, 7*24*time.Hour, cfg.Cache.MaxAge)
	assert.Equal(t, 30*time.Second, cfg.Cache.RefreshTimeout)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.False(t, cfg.Cloudinary.ServerSidePrefix)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
cloudinary:
  cloud_name: demo
  api_key: "123456789012345"
  root_folder: gallery
cache:
  backend: redis
  max_age: 1h
scheduler:
  enabled: true
  tasks:
    - name: nightly
      enabled: true
      cron: "0 3 * * *"
      target: all
`)
	t.Setenv("MEDIA_CLOUDINARY_API_SECRET", "from-env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Cloudinary.CloudName)
	assert.Equal(t, "from-env-secret", cfg.Cloudinary.APISecret)
	assert.Equal(t, "gallery", cfg.Cloudinary.RootFolder)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.MaxAge)
	require.Len(t, cfg.Scheduler.Tasks, 1)
	assert.Equal(t, "all", cfg.Scheduler.Tasks[0].Target)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Cloudinary: CloudinaryConfig{
				CloudName:  "demo",
				APIKey:     "key",
				APISecret:  "secret",
				RootFolder: "root",
				MaxResults: 50,
			},
			Cache: CacheConfig{Backend: "memory", MaxAge: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing cloud name", func(c *Config) { c.Cloudinary.CloudName = "" }, true},
		{"missing secret", func(c *Config) { c.Cloudinary.APISecret = "" }, true},
		{"max results too large", func(c *Config) { c.Cloudinary.MaxResults = 501 }, true},
		{"zero max age", func(c *Config) { c.Cache.MaxAge = 0 }, true},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"unknown task target", func(c *Config) {
			c.Scheduler.Tasks = []InvalidationTask{{Name: "bad", Target: "videos"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
