package magma

// ProblemDetails はRFC 7807エラーレスポンスを表す
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

// createdResponse は作成APIのレスポンスのうちIDのみを取り出すための構造体
type createdResponse struct {
	ID string `json:"id"`
}
