package handlers

import (
	"strings"

	"kbox/internal/demo"
	"kbox/internal/middleware"
	"kbox/internal/services"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
)

// UpdateBusinessHoursRequest 周营业表整表更新请求
type UpdateBusinessHoursRequest struct {
	Hours []services.HourEntry `json:"hours" binding:"required"`
}

type BusinessHourHandler struct {
	service *services.BusinessHourService
}

func NewBusinessHourHandler(service *services.BusinessHourService) *BusinessHourHandler {
	return &BusinessHourHandler{service: service}
}

// List 当前租户的周营业表
func (h *BusinessHourHandler) List(c *gin.Context) {
	if middleware.IsDemoMode(c) {
		response.Success(c, demo.BusinessHours())
		return
	}

	tenant := middleware.GetTenant(c)
	hours, err := h.service.List(c.Request.Context(), tenant.ID)
	if err != nil {
		handleTenantQueryError(c, err, "查询营业时间失败")
		return
	}

	response.Success(c, hours)
}

// Update 整表更新周营业表
func (h *BusinessHourHandler) Update(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	var req UpdateBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tenant := middleware.GetTenant(c)
	hours, err := h.service.BulkUpsert(c.Request.Context(), tenant.ID, req.Hours)
	if err != nil {
		if isValidationError(err) || isHourEntryError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		handleTenantQueryError(c, err, "更新营业时间失败")
		return
	}

	response.Success(c, hours)
}

// isHourEntryError 营业时间条目校验错误
func isHourEntryError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "星期") ||
		strings.Contains(msg, "开门时间") ||
		strings.Contains(msg, "关门时间") ||
		strings.Contains(msg, "条目不能为空")
}
