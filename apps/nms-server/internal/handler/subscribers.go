package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/lte-nms/pkg/csvimport"
	"github.com/oyaguma3/lte-nms/pkg/httputil"
	"github.com/oyaguma3/lte-nms/pkg/logging"
	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/oyaguma3/lte-nms/pkg/validation"
)

// createdResponse は加入者作成APIのレスポンス
type createdResponse struct {
	ID string `json:"id"`
}

// HandleListSubscribers はGET .../subscribers のハンドラー。
func (h *Handler) HandleListSubscribers(c *gin.Context) {
	subs, err := h.api.ListSubscribers(requestContext(c), c.Param(ParamNetworkID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// HandleGetSubscriber はGET .../subscribers/:subscriberId のハンドラー。
func (h *Handler) HandleGetSubscriber(c *gin.Context) {
	sub, err := h.api.GetSubscriber(requestContext(c), c.Param(ParamNetworkID), c.Param(ParamSubscriberID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// HandleCreateSubscriber はPOST .../subscribers のハンドラー。
// 鍵は16進数表記の入力を受け付け、オーケストレータ形式に変換して登録する。
func (h *Handler) HandleCreateSubscriber(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)

	var in validation.SubscriberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httputil.WriteError(c, httputil.BadRequest("invalid request body"))
		return
	}
	sub, err := in.ToSubscriber()
	if err != nil {
		httputil.WriteError(c, validationProblem(err))
		return
	}

	id, err := h.api.CreateSubscriber(requestContext(c), networkID, sub)
	if err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("subscriber created",
		logging.FieldTraceID, httputil.TraceID(c),
		logging.FieldEventID, "SUB_CREATE",
		logging.FieldNetworkID, networkID,
		h.masker.Attr(sub.IMSI()),
	)
	h.audit.LogCreate(actor(c), networkID, id)
	c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// HandleUpdateSubscriber はPUT .../subscribers/:subscriberId のハンドラー。
func (h *Handler) HandleUpdateSubscriber(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)
	subscriberID := c.Param(ParamSubscriberID)

	var in validation.SubscriberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httputil.WriteError(c, httputil.BadRequest("invalid request body"))
		return
	}
	pathIMSI := model.IMSIFromID(subscriberID)
	if in.IMSI != "" && model.IMSIFromID(strings.TrimSpace(in.IMSI)) != pathIMSI {
		httputil.WriteError(c, httputil.BadRequest("imsi: does not match the request path"))
		return
	}
	in.IMSI = pathIMSI

	sub, err := in.ToSubscriber()
	if err != nil {
		httputil.WriteError(c, validationProblem(err))
		return
	}

	if err := h.api.UpdateSubscriber(requestContext(c), networkID, sub); err != nil {
		h.writeError(c, err)
		return
	}

	h.audit.LogUpdate(actor(c), networkID, sub.ID)
	c.Status(http.StatusNoContent)
}

// HandleDeleteSubscriber はDELETE .../subscribers/:subscriberId のハンドラー。
func (h *Handler) HandleDeleteSubscriber(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)
	subscriberID := c.Param(ParamSubscriberID)

	if err := h.api.DeleteSubscriber(requestContext(c), networkID, subscriberID); err != nil {
		h.writeError(c, err)
		return
	}

	h.audit.LogDelete(actor(c), networkID, subscriberID)
	c.Status(http.StatusNoContent)
}

// HandleExport はGET .../subscribers/export のハンドラー。
// 加入者をインポートと同じテンプレート形式のCSVで返す。
func (h *Handler) HandleExport(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)

	subs, err := h.api.ListSubscribers(requestContext(c), networkID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := csvimport.WriteCSV(&buf, subs); err != nil {
		h.writeError(c, err)
		return
	}

	filename := "subscribers-" + networkID + ".csv"
	h.audit.LogExport(actor(c), networkID, filename, len(subs))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// validationProblem は結合された検証エラーを1つの400応答にまとめる。
func validationProblem(err error) *httputil.ProblemDetail {
	var msgs []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, e.Error())
		}
	} else {
		msgs = append(msgs, err.Error())
	}
	return httputil.BadRequest(strings.Join(msgs, "; "))
}
