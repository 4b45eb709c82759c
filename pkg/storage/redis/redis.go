// Package redis provides a medium backed by a Redis server, for running
// several storefront servers against shared session state.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/agentstation/storefront/pkg/errors"
)

// Medium stores values as plain Redis strings.
type Medium struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Medium.
type Option func(*Medium)

// WithPrefix namespaces every key, e.g. "storefront:".
func WithPrefix(prefix string) Option {
	return func(m *Medium) {
		m.prefix = prefix
	}
}

// WithTTL expires values after ttl of inactivity. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(m *Medium) {
		m.ttl = ttl
	}
}

// New wraps an existing client.
func New(client *goredis.Client, opts ...Option) *Medium {
	m := &Medium{client: client}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ParseURL turns a redis:// or rediss:// URL into client options.
func ParseURL(rawURL string) (*goredis.Options, error) {
	opt, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.NewConfigError("storage", "invalid redis URL", err)
	}
	return opt, nil
}

// Open connects to the server at rawURL and verifies it answers a PING.
func Open(ctx context.Context, rawURL string, opts ...Option) (*Medium, error) {
	opt, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	m := New(goredis.NewClient(opt), opts...)
	if err := m.Ping(ctx); err != nil {
		m.client.Close() //nolint:errcheck,gosec // ping error takes precedence
		return nil, errors.WrapResource("open", "storage", opt.Addr, err)
	}
	return m, nil
}

// Get implements storage.Reader.
func (m *Medium) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := m.client.Get(ctx, m.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapIO("read", key, err)
	}
	return v, true, nil
}

// Set implements storage.Writer.
func (m *Medium) Set(ctx context.Context, key, value string) error {
	if err := m.client.Set(ctx, m.prefix+key, value, m.ttl).Err(); err != nil {
		return errors.WrapIO("write", key, err)
	}
	return nil
}

// Delete implements storage.Writer.
func (m *Medium) Delete(ctx context.Context, key string) error {
	if err := m.client.Del(ctx, m.prefix+key).Err(); err != nil {
		return errors.WrapIO("delete", key, err)
	}
	return nil
}

// Ping implements storage.Pinger.
func (m *Medium) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

// Close implements storage.Medium.
func (m *Medium) Close() error {
	return m.client.Close()
}
