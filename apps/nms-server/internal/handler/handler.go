package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/audit"
	"github.com/oyaguma3/lte-nms/pkg/csvimport"
	"github.com/oyaguma3/lte-nms/pkg/httputil"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/model"
)

// リクエストヘッダ
const (
	// HeaderOrganization はリクエスト元の組織名
	HeaderOrganization = "X-NMS-Organization"
	// HeaderUser は操作ユーザー名（監査ログ用）
	HeaderUser = "X-NMS-User"
)

// ルートパラメータ名
const (
	ParamNetworkID    = "networkId"
	ParamSubscriberID = "subscriberId"
)

// organizationKey はgin.Contextに認可済み組織を格納するキー
const organizationKey = "organization"

// defaultUser はX-NMS-Userがない場合の監査ログ上のユーザー名
const defaultUser = "api"

// Handler はNMS APIのハンドラー。
type Handler struct {
	api       magma.SubscriberAPI
	importer  *csvimport.Importer
	tenants   TenantStore
	audit     *audit.Logger
	maxUpload int64
	masker    *logging.Masker
}

// Options はHandler生成時の依存を表す。
type Options struct {
	API            magma.SubscriberAPI
	Importer       *csvimport.Importer
	Tenants        TenantStore
	Audit          *audit.Logger
	MaxUploadBytes int64
	Masker         *logging.Masker
}

// NewHandler は新しいHandlerを生成する。
func NewHandler(opts Options) *Handler {
	return &Handler{
		api:       opts.API,
		importer:  opts.Importer,
		tenants:   opts.Tenants,
		audit:     opts.Audit,
		maxUpload: opts.MaxUploadBytes,
		masker:    opts.Masker,
	}
}

// HandleHealth はGET /healthz のハンドラー。
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TenantMiddleware はX-NMS-Organizationの組織がパスのネットワークを操作できるか検証する。
func (h *Handler) TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgName := c.GetHeader(HeaderOrganization)
		networkID := c.Param(ParamNetworkID)

		org, err := h.tenants.Authorize(c.Request.Context(), orgName, networkID)
		if err != nil {
			slog.Warn("tenant authorization failed",
				logging.FieldTraceID, httputil.TraceID(c),
				logging.FieldEventID, "TENANT_DENY",
				logging.FieldOrganization, orgName,
				logging.FieldNetworkID, networkID,
				logging.FieldError, err.Error(),
			)
			httputil.AbortWithError(c, problemFor(err))
			return
		}

		c.Set(organizationKey, org)
		c.Next()
	}
}

// HandleListNetworks はGET /nms/api/networks のハンドラー。
// 組織が操作できるネットワークのみを返す。
func (h *Handler) HandleListNetworks(c *gin.Context) {
	ctx := requestContext(c)
	org, err := h.tenants.Get(ctx, c.GetHeader(HeaderOrganization))
	if err != nil {
		if errors.Is(err, apperr.ErrOrganizationNotFound) {
			httputil.WriteError(c, httputil.Forbidden("unknown organization"))
			return
		}
		h.writeError(c, err)
		return
	}

	ids, err := h.api.ListNetworks(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, org.FilterNetworks(ids))
}

// requestContext はトレースIDを引き継いだコンテキストを返す。
func requestContext(c *gin.Context) context.Context {
	return magma.WithTraceID(c.Request.Context(), httputil.TraceID(c))
}

// actor はリクエストの操作主体を返す。
func actor(c *gin.Context) audit.Actor {
	user := strings.TrimSpace(c.GetHeader(HeaderUser))
	if user == "" {
		user = defaultUser
	}
	a := audit.Actor{User: user}
	if v, ok := c.Get(organizationKey); ok {
		if org, ok := v.(*model.Organization); ok {
			a.Organization = org.Name
		}
	}
	return a
}

// problemFor はエラーをProblemDetailに変換する。
func problemFor(err error) *httputil.ProblemDetail {
	if errors.Is(err, magma.ErrCircuitOpen) {
		return httputil.ServiceUnavailable("orchestrator is temporarily unavailable")
	}
	return httputil.FromError(err)
}

// writeError はエラーを記録してProblemDetailを返す。
func (h *Handler) writeError(c *gin.Context, err error) {
	problem := problemFor(err)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request.Context(), level, "request failed",
		logging.FieldTraceID, httputil.TraceID(c),
		logging.FieldEventID, "API_ERR",
		logging.FieldNetworkID, c.Param(ParamNetworkID),
		logging.FieldHTTPStatus, problem.Status,
		logging.FieldError, err.Error(),
	)
	httputil.WriteError(c, problem)
}
