package cache

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTenant struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	c := NewRedisCache(&Config{Host: host, Port: port, Prefix: "kbox_test"})
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestTenantCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	tenant := cachedTenant{ID: 7, Name: "Acme KTV", Subdomain: "acme"}
	require.NoError(t, c.SetTenant(ctx, "acme", &tenant, time.Minute))

	var got cachedTenant
	require.NoError(t, c.GetTenant(ctx, "acme", &got))
	assert.Equal(t, tenant, got)
}

func TestTenantCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got cachedTenant
	err := c.GetTenant(context.Background(), "nobody", &got)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestTenantCacheDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetTenant(ctx, "acme", &cachedTenant{ID: 7}, time.Minute))
	require.NoError(t, c.DeleteTenant(ctx, "acme"))

	var got cachedTenant
	assert.True(t, IsNotFound(c.GetTenant(ctx, "acme", &got)))

	// 删除不存在的键不报错
	assert.NoError(t, c.DeleteTenant(ctx, "acme"))
}

func TestTenantCacheTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetTenant(ctx, "acme", &cachedTenant{ID: 7}, 60*time.Second))
	mr.FastForward(61 * time.Second)

	var got cachedTenant
	assert.True(t, IsNotFound(c.GetTenant(ctx, "acme", &got)))
}

func TestBookingEventPubSub(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	sub := c.SubscribeBookingEvents(ctx, 7)
	defer sub.Close()
	// 确认订阅已建立再发布
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := &BookingEvent{
		TenantID:  7,
		Reference: "ref-001",
		RoomID:    3,
		Action:    "created",
		Status:    "pending",
		Created:   time.Now().Unix(),
	}
	require.NoError(t, c.PublishBookingEvent(ctx, event))

	select {
	case msg := <-sub.Channel():
		var got BookingEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, *event, got)
	case <-time.After(2 * time.Second):
		t.Fatal("没有收到预订事件")
	}
}

func TestBookingEventTenantScopedChannel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	sub := c.SubscribeBookingEvents(ctx, 8)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	// 租户7的事件不会串到租户8的频道
	require.NoError(t, c.PublishBookingEvent(ctx, &BookingEvent{TenantID: 7, Action: "created"}))

	select {
	case msg := <-sub.Channel():
		t.Fatalf("收到了别的租户的事件: %s", msg.Payload)
	case <-time.After(200 * time.Millisecond):
	}
}
