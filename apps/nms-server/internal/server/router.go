// Package server はNMS APIのHTTPサーバーとルーティングを提供する。
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/lte-nms/apps/nms-server/internal/handler"
	"github.com/oyaguma3/lte-nms/pkg/httputil"
)

// APIBasePath はNMS APIのベースパス
const APIBasePath = "/nms/api"

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.Handler) {
	engine.Use(
		httputil.TraceIDMiddleware(),
		httputil.LoggingMiddleware(),
		httputil.RecoveryMiddleware(),
	)

	engine.GET("/healthz", h.HandleHealth)

	api := engine.Group(APIBasePath)
	api.GET("/networks", h.HandleListNetworks)

	// ネットワーク配下は組織の権限を検証する
	network := api.Group("/networks/:"+handler.ParamNetworkID, h.TenantMiddleware())
	{
		network.GET("/subscribers", h.HandleListSubscribers)
		network.POST("/subscribers", h.HandleCreateSubscriber)
		network.POST("/subscribers/import", h.HandleImport)
		network.GET("/subscribers/export", h.HandleExport)
		network.GET("/subscribers/:"+handler.ParamSubscriberID, h.HandleGetSubscriber)
		network.PUT("/subscribers/:"+handler.ParamSubscriberID, h.HandleUpdateSubscriber)
		network.DELETE("/subscribers/:"+handler.ParamSubscriberID, h.HandleDeleteSubscriber)
	}
}
