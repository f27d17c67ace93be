package handlers

import (
	"net/http"
	"time"

	"kbox/internal/database"
	"kbox/internal/middleware"
	"kbox/pkg/config"
	kerrors "kbox/pkg/errors"
	"kbox/pkg/logger"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// EventsHandler 仪表盘实时预订流（WebSocket）
// 事件由预订服务发布到Redis，按租户频道隔离：
// 订阅的频道由Host解析出的租户决定，客户端无法指定别的租户
type EventsHandler struct {
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewEventsHandler() *EventsHandler {
	cfg := config.GetConfig()
	allowedOrigins := cfg.CORS.AllowOrigins

	return &EventsHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				// 同源请求Origin为空，允许
				if origin == "" {
					return true
				}

				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}

				logger.GetLogger().Warnf("WebSocket连接被拒绝，非法Origin: %s", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.GetLogger(),
	}
}

// Stream 向仪表盘推送当前租户的预订事件
func (h *EventsHandler) Stream(c *gin.Context) {
	if middleware.IsDemoMode(c) {
		response.Error(c, http.StatusForbidden, kerrors.ErrDemoReadOnly, "演示模式不支持实时流")
		return
	}

	tenant := middleware.GetTenant(c)
	if tenant == nil {
		response.ServerError(c, "租户上下文缺失")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorf("WebSocket升级失败: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := database.GetCache().SubscribeBookingEvents(ctx, tenant.ID)
	defer pubsub.Close()

	// 丢弃客户端消息，只用读循环感知断连
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				pubsub.Close()
				return
			}
		}
	}()

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
