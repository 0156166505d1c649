package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/httputil"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/oyaguma3/lte-nms/pkg/validation"
)

// ルートパラメータ名
const (
	ParamNetworkID    = "network_id"
	ParamSubscriberID = "subscriber_id"
)

// networkIDPattern はネットワークIDの形式
var networkIDPattern = regexp.MustCompile(`^[a-z_][0-9a-z_]{0,40}$`)

// Handler はMagma互換の加入者APIを提供する。
type Handler struct {
	store      Store
	failPrefix string
	masker     *logging.Masker
}

// NewHandler は新しいHandlerを生成する。
// failPrefixが空でない場合、一致するIMSIの作成要求は500を返す。
func NewHandler(store Store, failPrefix string, masker *logging.Masker) *Handler {
	return &Handler{
		store:      store,
		failPrefix: failPrefix,
		masker:     masker,
	}
}

// HandleHealth はGET /health のハンドラー。
func (h *Handler) HandleHealth(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// networkRequest はネットワーク作成リクエスト
type networkRequest struct {
	ID string `json:"id"`
}

// HandleListNetworks はGET /magma/v1/lte のハンドラー。
func (h *Handler) HandleListNetworks(c *gin.Context) {
	ids, err := h.store.ListNetworks(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// HandleCreateNetwork はPOST /magma/v1/lte のハンドラー。
func (h *Handler) HandleCreateNetwork(c *gin.Context) {
	var req networkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteError(c, httputil.BadRequest("invalid request body"))
		return
	}
	if !networkIDPattern.MatchString(req.ID) {
		httputil.WriteError(c, httputil.BadRequest("id: must be lower-case letters, digits or underscores"))
		return
	}
	if err := h.store.CreateNetwork(c.Request.Context(), req.ID); err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("network created",
		logging.FieldTraceID, httputil.TraceID(c),
		logging.FieldEventID, "NETWORK_CREATE",
		logging.FieldNetworkID, req.ID,
	)
	c.JSON(http.StatusCreated, req.ID)
}

// HandleListSubscribers はGET /magma/v1/lte/:network_id/subscribers のハンドラー。
func (h *Handler) HandleListSubscribers(c *gin.Context) {
	subs, err := h.store.ListSubscribers(c.Request.Context(), c.Param(ParamNetworkID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// HandleCreateSubscriber はPOST /magma/v1/lte/:network_id/subscribers のハンドラー。
func (h *Handler) HandleCreateSubscriber(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)
	sub, ok := h.bindSubscriber(c)
	if !ok {
		return
	}

	if h.failPrefix != "" && strings.HasPrefix(sub.IMSI(), h.failPrefix) {
		slog.Warn("injected create failure",
			logging.FieldTraceID, httputil.TraceID(c),
			logging.FieldEventID, "FAULT_INJECT",
			h.masker.Attr(sub.IMSI()),
		)
		httputil.WriteError(c, httputil.InternalServerError("injected failure"))
		return
	}

	if err := h.store.CreateSubscriber(c.Request.Context(), networkID, sub); err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("subscriber created",
		logging.FieldTraceID, httputil.TraceID(c),
		logging.FieldEventID, "SUB_CREATE",
		logging.FieldNetworkID, networkID,
		h.masker.Attr(sub.IMSI()),
	)
	c.JSON(http.StatusCreated, sub.ID)
}

// HandleGetSubscriber はGET .../subscribers/:subscriber_id のハンドラー。
func (h *Handler) HandleGetSubscriber(c *gin.Context) {
	sub, err := h.store.GetSubscriber(c.Request.Context(), c.Param(ParamNetworkID), c.Param(ParamSubscriberID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// HandleUpdateSubscriber はPUT .../subscribers/:subscriber_id のハンドラー。
func (h *Handler) HandleUpdateSubscriber(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)
	subscriberID := c.Param(ParamSubscriberID)

	var sub model.Subscriber
	if err := c.ShouldBindJSON(&sub); err != nil {
		httputil.WriteError(c, httputil.BadRequest("invalid request body"))
		return
	}
	if sub.ID == "" {
		sub.ID = subscriberID
	}
	if sub.ID != subscriberID {
		httputil.WriteError(c, httputil.BadRequest("id: does not match the request path"))
		return
	}
	if err := validation.ValidateSubscriber(&sub); err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.store.UpdateSubscriber(c.Request.Context(), networkID, &sub); err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("subscriber updated",
		logging.FieldTraceID, httputil.TraceID(c),
		logging.FieldEventID, "SUB_UPDATE",
		logging.FieldNetworkID, networkID,
		h.masker.Attr(sub.IMSI()),
	)
	c.Status(http.StatusNoContent)
}

// HandleDeleteSubscriber はDELETE .../subscribers/:subscriber_id のハンドラー。
func (h *Handler) HandleDeleteSubscriber(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)
	subscriberID := c.Param(ParamSubscriberID)

	if err := h.store.DeleteSubscriber(c.Request.Context(), networkID, subscriberID); err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("subscriber deleted",
		logging.FieldTraceID, httputil.TraceID(c),
		logging.FieldEventID, "SUB_DELETE",
		logging.FieldNetworkID, networkID,
		h.masker.Attr(model.IMSIFromID(subscriberID)),
	)
	c.Status(http.StatusNoContent)
}

// bindSubscriber はリクエストボディを加入者として読み取り検証する。
func (h *Handler) bindSubscriber(c *gin.Context) (*model.Subscriber, bool) {
	var sub model.Subscriber
	if err := c.ShouldBindJSON(&sub); err != nil {
		httputil.WriteError(c, httputil.BadRequest("invalid request body"))
		return nil, false
	}
	if err := validation.ValidateSubscriber(&sub); err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return &sub, true
}

// writeError はエラーをProblemDetailとして返す。
// ネットワーク未登録の404は専用のtypeで区別する。
func (h *Handler) writeError(c *gin.Context, err error) {
	problem := httputil.FromError(err)
	if errors.Is(err, apperr.ErrNetworkNotFound) {
		problem.Type = magma.ProblemTypeNetworkNotFound
	}

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request.Context(), level, "request failed",
		logging.FieldTraceID, httputil.TraceID(c),
		logging.FieldEventID, "API_ERR",
		logging.FieldHTTPStatus, problem.Status,
		logging.FieldError, err.Error(),
	)
	httputil.WriteError(c, problem)
}
