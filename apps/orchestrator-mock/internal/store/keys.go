// Package store はオーケストレータモックのValkeyアクセス層を提供する。
package store

// キー定義
const (
	// KeyNetworks はLTEネットワークIDのSet
	KeyNetworks = "net:ids"
	// PrefixNetwork はネットワーク単位のキーのプレフィックス
	PrefixNetwork = "net:"
	// PrefixSubscriber は加入者キーのプレフィックス
	PrefixSubscriber = "sub:"
)

// SubscriberKey は加入者JSONを保持するキーを生成する。
func SubscriberKey(networkID, subscriberID string) string {
	return PrefixSubscriber + networkID + ":" + subscriberID
}

// SubscriberIndexKey はネットワーク配下の加入者IDのSetキーを生成する。
func SubscriberIndexKey(networkID string) string {
	return PrefixNetwork + networkID + ":subs"
}
