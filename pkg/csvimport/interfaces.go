package csvimport

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=csvimport

import (
	"context"

	"github.com/oyaguma3/lte-nms/pkg/model"
)

// SubscriberCreator は加入者作成APIを定義する。
// 戻り値はサーバが割り当てた加入者ID。
type SubscriberCreator interface {
	CreateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) (string, error)
}
