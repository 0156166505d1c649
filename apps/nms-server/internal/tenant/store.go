// Package tenant は組織ごとのネットワーク権限を管理する。
package tenant

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/oyaguma3/lte-nms/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// PrefixOrganization は組織キーのプレフィックス
const PrefixOrganization = "org:"

// OrganizationKey は組織の許可ネットワークSetのキーを生成する。
func OrganizationKey(name string) string {
	return PrefixOrganization + name
}

// Store は組織と許可ネットワークの対応をValkeyに保持する。
type Store struct {
	client    redis.UniversalClient
	superuser string
}

// NewStore は新しいStoreを生成する。
// superuserに一致する組織は全ネットワークを操作できる。空の場合は無効。
func NewStore(client redis.UniversalClient, superuser string) *Store {
	return &Store{client: client, superuser: superuser}
}

// Get は組織を取得する。
// 許可ネットワークが1つもない組織はErrOrganizationNotFoundとなる。
func (s *Store) Get(ctx context.Context, name string) (*model.Organization, error) {
	if name == "" {
		return nil, apperr.ErrOrganizationNotFound
	}
	if s.superuser != "" && name == s.superuser {
		return &model.Organization{Name: name, Superuser: true}, nil
	}

	key := OrganizationKey(name)
	networks, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, valkey.WrapError("SMEMBERS", key, err)
	}
	if len(networks) == 0 {
		return nil, apperr.ErrOrganizationNotFound
	}
	sort.Strings(networks)
	return &model.Organization{Name: name, Networks: networks}, nil
}

// AddNetworks は組織に許可ネットワークを追加する。
func (s *Store) AddNetworks(ctx context.Context, name string, networkIDs ...string) error {
	if len(networkIDs) == 0 {
		return nil
	}
	members := make([]any, len(networkIDs))
	for i, id := range networkIDs {
		members[i] = id
	}
	key := OrganizationKey(name)
	if err := s.client.SAdd(ctx, key, members...).Err(); err != nil {
		return valkey.WrapError("SADD", key, err)
	}
	return nil
}

// Authorize は組織が指定ネットワークを操作できるか検証する。
// 未登録の組織や許可外のネットワークは*apperr.ForbiddenErrorを返す。
func (s *Store) Authorize(ctx context.Context, organization, networkID string) (*model.Organization, error) {
	org, err := s.Get(ctx, organization)
	if err != nil {
		if errors.Is(err, apperr.ErrOrganizationNotFound) {
			return nil, apperr.NewForbiddenError(organization, networkID)
		}
		return nil, err
	}
	if !org.CanAccess(networkID) {
		return nil, apperr.NewForbiddenError(organization, networkID)
	}
	return org, nil
}

// Seed は "組織名 -> ;区切りのネットワークID" の対応を登録する。
func (s *Store) Seed(ctx context.Context, organizations map[string]string) error {
	for name, list := range organizations {
		var ids []string
		for _, id := range strings.Split(list, ";") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if err := s.AddNetworks(ctx, strings.TrimSpace(name), ids...); err != nil {
			return err
		}
	}
	return nil
}
