package magma

import "time"

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
)

// Content-Type
const (
	ContentTypeJSON    = "application/json"
	ContentTypeProblem = "application/problem+json"
)

// APIパス
const (
	// APIPrefix はオーケストレータREST APIのパスプレフィックス
	APIPrefix = "/magma/v1"
	// LTENetworksPath はLTEネットワーク一覧のパス
	LTENetworksPath = APIPrefix + "/lte"
)

// 接続設定
const (
	DefaultRequestTimeout = 10 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "orchestrator"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// ProblemTypeNetworkNotFound はネットワーク未登録を示すProblemDetailのtype。
// 404応答のうち加入者未登録とネットワーク未登録を区別するために使う。
const ProblemTypeNetworkNotFound = "urn:lte-nms:problem:network-not-found"

// SubscribersPath はネットワーク配下の加入者コレクションのパスを返す。
func SubscribersPath(networkID string) string {
	return LTENetworksPath + "/" + networkID + "/subscribers"
}

// SubscriberPath は加入者リソースのパスを返す。
func SubscriberPath(networkID, subscriberID string) string {
	return SubscribersPath(networkID) + "/" + subscriberID
}
