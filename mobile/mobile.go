package mobile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	httpserver "khs/internal/server/http"
)

var (
	mu      sync.Mutex
	running *httpserver.Server
	stopRun context.CancelFunc
)

// StartServer 在后台启动本地服务，不阻塞 Android 的 UI 线程。
// webDir: 解压出来的前端资源目录
// port: 监听端口，比如 "2888"
func StartServer(webDir string, port string) {
	mu.Lock()
	defer mu.Unlock()
	if running != nil {
		return
	}

	log, err := httpserver.NewLogger("info")
	if err != nil {
		log = zap.NewNop()
	}

	cfg := httpserver.DefaultConfig()
	cfg.Addr = "127.0.0.1:" + port
	cfg.WebDir = webDir
	srv := httpserver.NewServer(cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.Run(ctx) }()
	go func() {
		if err := srv.Listen(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	running, stopRun = srv, cancel
}

// StopServer 停掉 StartServer 起的服务
func StopServer() {
	mu.Lock()
	defer mu.Unlock()
	if running == nil {
		return
	}
	stopRun()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = running.Close(ctx)
	running, stopRun = nil, nil
}
