package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache 租户目录缓存 + 预订事件广播
type RedisCache struct {
	client *redis.Client
	prefix string
}

// BookingEvent 预订事件消息（推送到仪表盘实时流）
type BookingEvent struct {
	TenantID  uint   `json:"tenant_id"`
	Reference string `json:"reference"`
	RoomID    uint   `json:"room_id"`
	Action    string `json:"action"` // created / status_changed / cancelled
	Status    string `json:"status"`
	Created   int64  `json:"created"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisCache 创建Redis缓存实例
func NewRedisCache(config *Config) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "kbox"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Ping 测试Redis连接
func (r *RedisCache) Ping() error {
	ctx := context.Background()
	return r.client.Ping(ctx).Err()
}

// GetClient 获取底层客户端
func (r *RedisCache) GetClient() *redis.Client {
	return r.client
}

// ========== 租户目录缓存 ==========

func (r *RedisCache) tenantKey(subdomain string) string {
	return fmt.Sprintf("%s:tenant:%s", r.prefix, subdomain)
}

// GetTenant 按子域名读取缓存的租户记录，未命中返回redis.Nil
func (r *RedisCache) GetTenant(ctx context.Context, subdomain string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.tenantKey(subdomain)).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetTenant 写入租户目录缓存
func (r *RedisCache) SetTenant(ctx context.Context, subdomain string, tenant interface{}, ttl time.Duration) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.tenantKey(subdomain), data, ttl).Err()
}

// DeleteTenant 失效租户目录缓存（租户更新/状态变更后调用）
func (r *RedisCache) DeleteTenant(ctx context.Context, subdomain string) error {
	return r.client.Del(ctx, r.tenantKey(subdomain)).Err()
}

// IsNotFound 判断是否为缓存未命中
func IsNotFound(err error) bool {
	return err == redis.Nil
}

// ========== 预订事件广播 ==========

func (r *RedisCache) eventChannel(tenantID uint) string {
	return fmt.Sprintf("%s:events:%d", r.prefix, tenantID)
}

// PublishBookingEvent 发布预订事件
func (r *RedisCache) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.eventChannel(event.TenantID), data).Err()
}

// SubscribeBookingEvents 订阅指定租户的预订事件流
func (r *RedisCache) SubscribeBookingEvents(ctx context.Context, tenantID uint) *redis.PubSub {
	return r.client.Subscribe(ctx, r.eventChannel(tenantID))
}
