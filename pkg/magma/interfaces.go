// Package magma はオーケストレータ（Magma互換）REST APIのクライアントを提供する。
package magma

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=magma

import (
	"context"

	"github.com/oyaguma3/lte-nms/pkg/model"
)

// SubscriberAPI はオーケストレータの加入者APIを定義する。
type SubscriberAPI interface {
	// CreateSubscriber は加入者を作成し、サーバが割り当てたIDを返す
	CreateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) (string, error)
	// UpdateSubscriber は既存の加入者を更新する
	UpdateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) error
	// GetSubscriber は加入者を取得する
	GetSubscriber(ctx context.Context, networkID, subscriberID string) (*model.Subscriber, error)
	// ListSubscribers はネットワーク配下の加入者をID順に返す
	ListSubscribers(ctx context.Context, networkID string) ([]*model.Subscriber, error)
	// DeleteSubscriber は加入者を削除する
	DeleteSubscriber(ctx context.Context, networkID, subscriberID string) error
	// ListNetworks はLTEネットワークID一覧を返す
	ListNetworks(ctx context.Context) ([]string, error)
}
