package httpserver

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"khs/internal/server/game"
)

// Server 对局管理 + /api/* + 静态页面
type Server struct {
	cfg ServerConfig
	log *zap.Logger
	mgr *game.Manager
	h   *Handler
	srv *http.Server
}

func NewServer(cfg ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	mgr := game.NewManager(log.Named("game"), cfg.SessionTTL)
	s := &Server{
		cfg: cfg,
		log: log,
		mgr: mgr,
		h:   NewHandler(mgr, log.Named("api")),
	}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) Manager() *game.Manager { return s.mgr }

// Routes 完整的路由表，测试里直接拿去套 httptest
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", s.h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, HealthResponse{Status: "ok", Sessions: s.mgr.Len()})
	})
	if s.cfg.WebDir != "" {
		RegisterStaticRoutes(mux, s.cfg.WebDir, s.cfg.MobileDir)
	}
	return loggingMiddleware(s.log, mux)
}

// Listen 开始监听并阻塞，直到 Close
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.cfg.Addr)
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("listening", zap.String("addr", ln.Addr().String()), zap.String("web", s.cfg.WebDir))
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}
	return nil
}

// Run 跑会话清理，直到 ctx 结束
func (s *Server) Run(ctx context.Context) error {
	return s.mgr.Run(ctx)
}

func (s *Server) Close(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Hijack websocket 升级需要
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func loggingMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
