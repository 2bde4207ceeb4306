package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug/info/warn/error
	Output    string // console/file/both
	Format    string // text/json
	FilePath  string // Output为file或both时使用
	Colorize  bool   // 仅对控制台text格式生效
	AddSource bool
}

var (
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
	logFile       *os.File
	mu            sync.Mutex
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Init 初始化全局日志
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}
	var (
		handlers []slog.Handler
		file     *os.File
	)
	output := strings.ToLower(opts.Output)
	if output == "" {
		output = "console"
	}

	if output == "console" || output == "both" {
		handlers = append(handlers, newHandler(os.Stdout, opts, opts.Colorize))
	}

	if output == "file" || output == "both" {
		if opts.FilePath == "" {
			return fmt.Errorf("log file path is required for output %q", output)
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		// 文件输出不着色
		handlers = append(handlers, newHandler(f, opts, false))
	}

	if len(handlers) == 0 {
		return fmt.Errorf("unknown log output: %s", opts.Output)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	levelVar.Set(level)

	if len(handlers) == 1 {
		defaultLogger = slog.New(handlers[0])
	} else {
		defaultLogger = slog.New(&fanoutHandler{handlers: handlers})
	}
	return nil
}

func newHandler(w io.Writer, opts Options, colorize bool) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: opts.AddSource,
	}

	if strings.ToLower(opts.Format) == "json" {
		return slog.NewJSONHandler(w, handlerOpts)
	}

	if colorize {
		handlerOpts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(colorFor(lvl) + lvl.String() + colorReset)
				}
			}
			return a
		}
	}
	return slog.NewTextHandler(w, handlerOpts)
}

func colorFor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorBlue
	default:
		return colorGray
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// SetLevel 动态调整日志级别
func SetLevel(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(lvl)
	return nil
}

// get 获取全局logger,未初始化时使用控制台默认配置
func get() *slog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l != nil {
		return l
	}
	if err := Init(Options{Level: "info", Output: "console"}); err != nil {
		return slog.Default()
	}
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// Logger 返回底层slog.Logger
func Logger() *slog.Logger {
	return get()
}

// With 返回附带固定字段的logger
func With(args ...any) *slog.Logger {
	return get().With(SanitizeArgs(args...)...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, SanitizeArgs(args...)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, SanitizeArgs(args...)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, SanitizeArgs(args...)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, SanitizeArgs(args...)...)
}
