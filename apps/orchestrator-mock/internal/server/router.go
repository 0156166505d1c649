// Package server はHTTPサーバーとルーティングを提供する。
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/lte-nms/apps/orchestrator-mock/internal/handler"
	"github.com/oyaguma3/lte-nms/pkg/httputil"
	"github.com/oyaguma3/lte-nms/pkg/magma"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.Handler) {
	engine.Use(
		httputil.TraceIDMiddleware(),
		httputil.LoggingMiddleware(),
		httputil.RecoveryMiddleware(),
	)

	// ヘルスチェック
	engine.GET("/health", h.HandleHealth)

	// Magma互換API
	lte := engine.Group(magma.LTENetworksPath)
	{
		lte.GET("", h.HandleListNetworks)
		lte.POST("", h.HandleCreateNetwork)

		subs := lte.Group("/:" + handler.ParamNetworkID + "/subscribers")
		subs.GET("", h.HandleListSubscribers)
		subs.POST("", h.HandleCreateSubscriber)
		subs.GET("/:"+handler.ParamSubscriberID, h.HandleGetSubscriber)
		subs.PUT("/:"+handler.ParamSubscriberID, h.HandleUpdateSubscriber)
		subs.DELETE("/:"+handler.ParamSubscriberID, h.HandleDeleteSubscriber)
	}
}
