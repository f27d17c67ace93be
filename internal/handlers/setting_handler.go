package handlers

import (
	"kbox/internal/middleware"
	"kbox/internal/services"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
)

// UpsertSettingRequest 配置写入请求
type UpsertSettingRequest struct {
	Value string `json:"value"`
}

type SettingHandler struct {
	service *services.SettingService
}

func NewSettingHandler(service *services.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// List 当前租户的全部配置
func (h *SettingHandler) List(c *gin.Context) {
	if middleware.IsDemoMode(c) {
		response.Success(c, []interface{}{})
		return
	}

	tenant := middleware.GetTenant(c)
	settings, err := h.service.List(c.Request.Context(), tenant.ID)
	if err != nil {
		handleTenantQueryError(c, err, "查询配置失败")
		return
	}

	response.Success(c, settings)
}

// Upsert 写入配置
func (h *SettingHandler) Upsert(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	key := c.Param("key")
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tenant := middleware.GetTenant(c)
	setting, err := h.service.Upsert(c.Request.Context(), tenant.ID, key, req.Value)
	if err != nil {
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		handleTenantQueryError(c, err, "写入配置失败")
		return
	}

	response.Success(c, setting)
}
