// Package handler はNMSサーバーのHTTPハンドラーを提供する。
package handler

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=handler

import (
	"context"

	"github.com/oyaguma3/lte-nms/pkg/model"
)

// TenantStore は組織とネットワーク権限の参照を定義する。
type TenantStore interface {
	// Get は組織を取得する
	Get(ctx context.Context, name string) (*model.Organization, error)
	// Authorize は組織が指定ネットワークを操作できるか検証する
	Authorize(ctx context.Context, organization, networkID string) (*model.Organization, error)
}
