package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/lte-nms/pkg/csvimport"
	"github.com/oyaguma3/lte-nms/pkg/httputil"
)

// FormFieldFile はmultipartアップロード時のファイルフィールド名
const FormFieldFile = "file"

// sourceRequestBody はCSVがリクエストボディで送られた場合の監査ログ上の取り込み元
const sourceRequestBody = "request-body"

// importResponse はインポートAPIのレスポンス
type importResponse struct {
	Success    []string `json:"success"`
	FailureIDs []string `json:"failureIDs"`
}

// HandleImport はPOST .../subscribers/import のハンドラー。
// multipartのfileフィールドまたはtext/csvのボディを受け付ける。
// 構造エラーの場合は1件も登録せずに400を返す。
func (h *Handler) HandleImport(c *gin.Context) {
	networkID := c.Param(ParamNetworkID)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	data, source, err := readUpload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(c, httputil.NewProblemDetail(http.StatusRequestEntityTooLarge,
				"Request Entity Too Large", "upload exceeds the size limit"))
			return
		}
		httputil.WriteError(c, httputil.BadRequest(err.Error()))
		return
	}

	result, err := h.importer.Import(requestContext(c), networkID, data, csvimport.Callbacks{})
	if err != nil {
		if csvimport.IsStructural(err) {
			httputil.WriteError(c, httputil.BadRequest(err.Error()))
			return
		}
		h.writeError(c, err)
		return
	}

	h.audit.LogImport(actor(c), networkID, source, len(result.SucceededIDs), len(result.FailedIMSIs))

	c.JSON(http.StatusOK, importResponse{
		Success:    nonNil(result.SucceededIDs),
		FailureIDs: nonNil(result.FailedIMSIs),
	})
}

// readUpload はアップロードされたCSVと取り込み元の名前を返す。
func readUpload(c *gin.Context) ([]byte, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile(FormFieldFile)
		if err != nil {
			// MaxBytesErrorはそのまま返す
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, "", err
			}
			return nil, "", errors.New("multipart field \"file\" is required")
		}
		data, err := readFileHeader(fh)
		return data, fh.Filename, err
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, "", err
	}
	return data, sourceRequestBody, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
