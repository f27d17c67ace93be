package handlers

import (
	"errors"

	"kbox/internal/services"
	"kbox/pkg/jwt"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminLoginRequest 平台管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminAuthHandler 平台管理员认证
type AdminAuthHandler struct {
	adminService *services.AdminUserService
	jwtManager   *jwt.JWTManager
}

func NewAdminAuthHandler(adminService *services.AdminUserService) *AdminAuthHandler {
	return &AdminAuthHandler{
		adminService: adminService,
		jwtManager:   jwt.GetJWTManager(),
	}
}

// Login 管理员登录
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	admin, err := h.adminService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, "用户名或密码错误")
			return
		}
		response.ServerError(c, "登录失败")
		return
	}

	if !h.adminService.IsActive(admin) {
		response.Unauthorized(c, "管理员已被禁用")
		return
	}

	token, err := h.jwtManager.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		response.ServerError(c, "生成令牌失败")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_in": int64(h.jwtManager.GetTokenDuration().Seconds()),
		"username":   admin.Username,
	})
}
