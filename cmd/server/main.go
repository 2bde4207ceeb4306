package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/easayliu/media-gallery/internal/application/container"
	"github.com/easayliu/media-gallery/internal/infrastructure/config"
	"github.com/easayliu/media-gallery/internal/interfaces/http/routes"
	"github.com/easayliu/media-gallery/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// @title Media Gallery API
// @version 1.0
// @description 带缓存的Cloudinary媒体库只读查询服务

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	cmd := &cli.Command{
		Name:  "media-gallery",
		Usage: "Cached read access to a Cloudinary media library",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config.yaml (default: ./configs/config.yaml or ./config.yaml)",
				Sources: cli.EnvVars("MEDIA_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides server.host and server.port",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// 加载配置
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 设置Gin模式
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// 初始化服务容器
	c, err := container.NewServiceContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service container: %w", err)
	}
	defer c.Shutdown()

	if err := c.Start(); err != nil {
		return err
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = cfg.Server.Address()
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.SetupRoutes(c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 设置信号处理
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "root_folder", cfg.Cloudinary.RootFolder)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待退出信号
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	logger.Info("Server stopped")
	return nil
}
