package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpserver "khs/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面时会失败，不管
}

// localURL ":2888" -> http://127.0.0.1:2888
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}

func main() {
	cfg := httpserver.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	browser := flag.Bool("browser", true, "open the default browser after start")
	flag.Parse()

	log, err := httpserver.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.NewServer(cfg, log)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(srv.Listen)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Close(shutdownCtx)
	})

	if *browser {
		// 等监听起来再开浏览器
		go func() {
			select {
			case <-time.After(100 * time.Millisecond):
				openBrowser(localURL(cfg.Addr))
			case <-ctx.Done():
			}
		}()
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
