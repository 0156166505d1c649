package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/lte-nms/apps/nms-server/internal/config"
	"github.com/oyaguma3/lte-nms/apps/nms-server/internal/handler"
)

// Server はHTTPサーバーを表す。
type Server struct {
	httpServer *http.Server
}

// New は新しいServerを生成する。
func New(cfg *config.Config, h *handler.Handler) *Server {
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	// multipartのメモリ保持上限をアップロード上限に揃える
	engine.MaxMultipartMemory = cfg.MaxUploadBytes
	SetupRouter(engine, h)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run はサーバーを起動する。
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown はサーバーを停止する。
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
