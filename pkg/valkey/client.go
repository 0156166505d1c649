package valkey

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

// PingTimeout はヘルスチェックのPINGに使うタイムアウト。
const PingTimeout = 1 * time.Second

// NewClient はValkeyクライアントを生成し、PINGで疎通を確認する。
// ctxに期限が無い場合はoptsの接続タイムアウトを期限とする。
func NewClient(ctx context.Context, opts *Options) (*redis.Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts.redisOptions())
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperr.NewValkeyError("PING", "", errors.Join(apperr.ErrValkeyConnection, err))
	}
	return client, nil
}

// Ping はPingTimeout以内にPINGが返るかを確認する。
func Ping(ctx context.Context, client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	return WrapError("PING", "", client.Ping(ctx).Err())
}

// WrapError はコマンドのエラーを*apperr.ValkeyErrorに変換する。
// 原因に応じてErrValkeyConnectionまたはErrValkeyCommandを連結する。nilはnilを返す。
func WrapError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	kind := apperr.ErrValkeyCommand
	if IsConnectionError(err) {
		kind = apperr.ErrValkeyConnection
	}
	return apperr.NewValkeyError(op, key, errors.Join(kind, err))
}

// IsConnectionError は接続断やタイムアウトによるエラーかどうかを判定する。
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apperr.ErrValkeyConnection) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsKeyNotFound はGET等でキーが存在しなかったかどうかを判定する。
func IsKeyNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
