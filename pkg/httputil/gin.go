package httputil

import "github.com/gin-gonic/gin"

// WriteError はProblemDetailをGinレスポンスとして書き込む。
// instanceとtrace_idが未設定の場合はリクエストから補完する。
func WriteError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.JSON(problem.Status, withRequest(c, problem))
}

// AbortWithError はProblemDetailを書き込み、後続のハンドラーを中断する。
func AbortWithError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(problem.Status, withRequest(c, problem))
}

// withRequest はリクエスト情報を補完したProblemDetailの複製を返す。
func withRequest(c *gin.Context, problem *ProblemDetail) *ProblemDetail {
	p := *problem
	if p.Instance == "" && c.Request != nil {
		p.Instance = c.Request.URL.Path
	}
	if p.TraceID == "" {
		p.TraceID = TraceID(c)
	}
	return &p
}
