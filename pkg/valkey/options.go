// Package valkey はValkeyクライアントの共通機能を提供する。
package valkey

import (
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config は環境変数から読み込むValkey接続設定。
// 各アプリのConfigに埋め込んで使う。
type Config struct {
	RedisHost        string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort        string        `envconfig:"REDIS_PORT" default:"6379"`
	RedisPass        string        `envconfig:"REDIS_PASS"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	RedisDialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"3s"`
	RedisPoolSize    int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
}

// RedisAddr はValkey接続文字列を返す。
func (c Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

// ValkeyOptions は設定からクライアントの接続オプションを生成する。
// 0以下の値はDefaultOptionsの値を使う。
func (c Config) ValkeyOptions() *Options {
	opts := NewOptions(c.RedisAddr(), c.RedisPass, c.RedisDB)
	if c.RedisDialTimeout > 0 {
		opts.ConnectTimeout = c.RedisDialTimeout
	}
	if c.RedisPoolSize > 0 {
		opts.PoolSize = c.RedisPoolSize
	}
	return opts
}

// Options はValkeyクライアントの接続オプション。
type Options struct {
	Addr           string        // 接続先アドレス（host:port形式）
	Password       string        // 認証パスワード
	DB             int           // データベース番号
	ConnectTimeout time.Duration // 接続タイムアウト（起動時のPINGにも使う）
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolSize       int
	MinIdleConns   int
}

// DefaultOptions はデフォルトのOptionsを返す。
func DefaultOptions() *Options {
	return &Options{
		Addr:           "localhost:6379",
		ConnectTimeout: 3 * time.Second,
		ReadTimeout:    2 * time.Second,
		WriteTimeout:   2 * time.Second,
		PoolSize:       10,
		MinIdleConns:   2,
	}
}

// NewOptions は接続先と認証情報を指定したOptionsを返す。
func NewOptions(addr, password string, db int) *Options {
	opts := DefaultOptions()
	opts.Addr = addr
	opts.Password = password
	opts.DB = db
	return opts
}

func (o *Options) redisOptions() *redis.Options {
	return &redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DB:           o.DB,
		DialTimeout:  o.ConnectTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		PoolSize:     o.PoolSize,
		MinIdleConns: o.MinIdleConns,
	}
}
