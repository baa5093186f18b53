package httpserver

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ServerConfig 本地服务的配置
type ServerConfig struct {
	Addr       string        // 监听地址，默认 :2888
	WebDir     string        // 桌面版静态文件
	MobileDir  string        // 手机版静态文件，空则和 WebDir 相同
	SessionTTL time.Duration // 无人操作多久后清理对局，<=0 不清理
	LogLevel   string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func DefaultConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":2888",
		WebDir:       "./web",
		SessionTTL:   2 * time.Hour,
		LogLevel:     "info",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// RegisterFlags 把配置挂到 fs 上，默认值先取环境变量 KHS_*
func (c *ServerConfig) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", getenv("KHS_ADDR", c.Addr), "listen address")
	fs.StringVar(&c.WebDir, "web", getenv("KHS_WEB", c.WebDir), "directory with index.html / js / svg")
	fs.StringVar(&c.MobileDir, "web-mobile", getenv("KHS_WEB_MOBILE", c.MobileDir), "directory with mobile assets (defaults to -web)")
	fs.DurationVar(&c.SessionTTL, "session-ttl", getenvDuration("KHS_SESSION_TTL", c.SessionTTL), "drop games idle for this long (0 keeps them forever)")
	fs.StringVar(&c.LogLevel, "log-level", getenv("KHS_LOG_LEVEL", c.LogLevel), "debug, info, warn or error")
}

// NewLogger 按级别建一个 JSON 输出的 zap logger
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Sampling = nil
	log, err := cfg.Build()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return log, nil
}
