// Package handler はオーケストレータモックのHTTPハンドラーを提供する。
package handler

import (
	"context"

	"github.com/oyaguma3/lte-nms/pkg/model"
)

// Store はネットワークと加入者の永続化を定義する。
type Store interface {
	Ping(ctx context.Context) error
	CreateNetwork(ctx context.Context, networkID string) error
	ListNetworks(ctx context.Context) ([]string, error)
	CreateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) error
	UpdateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) error
	GetSubscriber(ctx context.Context, networkID, subscriberID string) (*model.Subscriber, error)
	ListSubscribers(ctx context.Context, networkID string) (map[string]*model.Subscriber, error)
	DeleteSubscriber(ctx context.Context, networkID, subscriberID string) error
}
