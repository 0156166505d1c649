package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/oyaguma3/lte-nms/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// Store はネットワークと加入者をValkeyに保持する。
type Store struct {
	client redis.UniversalClient
}

// New は新しいStoreを生成する。
func New(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// Ping はValkeyへの疎通を確認する。
func (s *Store) Ping(ctx context.Context) error {
	return valkey.Ping(ctx, s.client)
}

// CreateNetwork はLTEネットワークを登録する。
func (s *Store) CreateNetwork(ctx context.Context, networkID string) error {
	added, err := s.client.SAdd(ctx, KeyNetworks, networkID).Result()
	if err != nil {
		return valkey.WrapError("SADD", KeyNetworks, err)
	}
	if added == 0 {
		return apperr.ErrNetworkExists
	}
	return nil
}

// ListNetworks は登録済みネットワークIDを昇順で返す。
func (s *Store) ListNetworks(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, KeyNetworks).Result()
	if err != nil {
		return nil, valkey.WrapError("SMEMBERS", KeyNetworks, err)
	}
	sort.Strings(ids)
	return ids, nil
}

// NetworkExists はネットワークが登録済みかどうかを返す。
func (s *Store) NetworkExists(ctx context.Context, networkID string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, KeyNetworks, networkID).Result()
	if err != nil {
		return false, valkey.WrapError("SISMEMBER", KeyNetworks, err)
	}
	return ok, nil
}

// CreateSubscriber は加入者を作成する。
// ネットワーク未登録の場合はErrNetworkNotFound、重複時はErrSubscriberExistsを返す。
func (s *Store) CreateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) error {
	if err := s.requireNetwork(ctx, networkID); err != nil {
		return err
	}

	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal subscriber: %w", err)
	}

	key := SubscriberKey(networkID, sub.ID)
	created, err := s.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return valkey.WrapError("SETNX", key, err)
	}
	if !created {
		return apperr.ErrSubscriberExists
	}

	indexKey := SubscriberIndexKey(networkID)
	if err := s.client.SAdd(ctx, indexKey, sub.ID).Err(); err != nil {
		return valkey.WrapError("SADD", indexKey, err)
	}
	return nil
}

// UpdateSubscriber は既存の加入者を置き換える。
func (s *Store) UpdateSubscriber(ctx context.Context, networkID string, sub *model.Subscriber) error {
	if err := s.requireNetwork(ctx, networkID); err != nil {
		return err
	}

	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal subscriber: %w", err)
	}

	key := SubscriberKey(networkID, sub.ID)
	updated, err := s.client.SetXX(ctx, key, data, 0).Result()
	if err != nil {
		return valkey.WrapError("SETXX", key, err)
	}
	if !updated {
		return apperr.ErrSubscriberNotFound
	}
	return nil
}

// GetSubscriber は加入者を取得する。
func (s *Store) GetSubscriber(ctx context.Context, networkID, subscriberID string) (*model.Subscriber, error) {
	if err := s.requireNetwork(ctx, networkID); err != nil {
		return nil, err
	}

	key := SubscriberKey(networkID, subscriberID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if valkey.IsKeyNotFound(err) {
			return nil, apperr.ErrSubscriberNotFound
		}
		return nil, valkey.WrapError("GET", key, err)
	}
	return decode(data)
}

// ListSubscribers はネットワーク配下の加入者をIDをキーとしたmapで返す。
func (s *Store) ListSubscribers(ctx context.Context, networkID string) (map[string]*model.Subscriber, error) {
	if err := s.requireNetwork(ctx, networkID); err != nil {
		return nil, err
	}

	indexKey := SubscriberIndexKey(networkID)
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, valkey.WrapError("SMEMBERS", indexKey, err)
	}

	subs := make(map[string]*model.Subscriber, len(ids))
	if len(ids) == 0 {
		return subs, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = SubscriberKey(networkID, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, valkey.WrapError("MGET", indexKey, err)
	}

	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// インデックスに残った削除済みエントリ
			continue
		}
		sub, err := decode([]byte(str))
		if err != nil {
			return nil, err
		}
		subs[ids[i]] = sub
	}
	return subs, nil
}

// DeleteSubscriber は加入者を削除する。
func (s *Store) DeleteSubscriber(ctx context.Context, networkID, subscriberID string) error {
	if err := s.requireNetwork(ctx, networkID); err != nil {
		return err
	}

	key := SubscriberKey(networkID, subscriberID)
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, key)
	pipe.SRem(ctx, SubscriberIndexKey(networkID), subscriberID)
	if _, err := pipe.Exec(ctx); err != nil {
		return valkey.WrapError("DEL", key, err)
	}
	if del.Val() == 0 {
		return apperr.ErrSubscriberNotFound
	}
	return nil
}

func (s *Store) requireNetwork(ctx context.Context, networkID string) error {
	ok, err := s.NetworkExists(ctx, networkID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNetworkNotFound
	}
	return nil
}

func decode(data []byte) (*model.Subscriber, error) {
	var sub model.Subscriber
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("unmarshal subscriber: %w", err)
	}
	return &sub, nil
}
