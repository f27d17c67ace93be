package middleware

import (
	"strings"

	"kbox/internal/services"
	"kbox/pkg/jwt"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 平台管理接口的JWT守卫
type AdminAuthMiddleware struct {
	adminService *services.AdminUserService
	jwtManager   *jwt.JWTManager
}

func NewAdminAuthMiddleware() *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		adminService: services.NewAdminUserService(),
		jwtManager:   jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

// RequireAdmin 要求平台管理员登录
func (m *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 检查Bearer格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		tokenString := authHeader[7:] // 去掉 "Bearer "

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		admin, err := m.adminService.GetByID(claims.AdminID)
		if err != nil {
			response.Unauthorized(c, "管理员不存在")
			c.Abort()
			return
		}

		if !m.adminService.IsActive(admin) {
			response.Unauthorized(c, "管理员已被禁用")
			c.Abort()
			return
		}

		c.Set("admin", admin)
		c.Set("admin_id", claims.AdminID)
		c.Set("admin_username", claims.Username)

		c.Next()
	}
}
