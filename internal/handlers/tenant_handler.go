package handlers

import (
	"errors"
	"net/http"
	"strings"

	"kbox/internal/middleware"
	"kbox/internal/services"
	kerrors "kbox/pkg/errors"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdateTenantProfileRequest 租户资料更新请求
type UpdateTenantProfileRequest struct {
	Name     string         `json:"name"`
	Settings datatypes.JSON `json:"settings"`
}

// TenantHandler 租户自身资料接口（租户由Host解析，无ID参数）
type TenantHandler struct {
	service *services.TenantService
}

func NewTenantHandler(service *services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// GetProfile 当前租户资料
func (h *TenantHandler) GetProfile(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	if tenant == nil {
		response.ServerError(c, "租户上下文缺失")
		return
	}
	response.Success(c, tenant)
}

// UpdateProfile 更新当前租户的名称/设置
func (h *TenantHandler) UpdateProfile(c *gin.Context) {
	if middleware.IsDemoMode(c) {
		response.Error(c, http.StatusForbidden, kerrors.ErrDemoReadOnly, "演示模式不支持写操作")
		return
	}

	tenant := middleware.GetTenant(c)
	if tenant == nil {
		response.ServerError(c, "租户上下文缺失")
		return
	}

	var req UpdateTenantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	updated, err := h.service.UpdateProfile(tenant.ID, req.Name, req.Settings)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, kerrors.ErrTenantNotFound, "租户不存在")
			return
		}
		if strings.Contains(err.Error(), "租户名称长度") {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, updated)
}
