package handlers

import (
	"kbox/internal/middleware"
	"kbox/internal/services"
	"kbox/pkg/pagination"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	service *services.AuditService
}

func NewAuditHandler(service *services.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List 当前租户的审计日志（分页）
func (h *AuditHandler) List(c *gin.Context) {
	if middleware.IsDemoMode(c) {
		response.Success(c, []interface{}{})
		return
	}

	pageParams := pagination.ParsePageParams(c)
	tenant := middleware.GetTenant(c)

	logs, total, err := h.service.ListWithPage(
		c.Request.Context(), tenant.ID,
		pageParams.Page, pageParams.PageSize)
	if err != nil {
		handleTenantQueryError(c, err, "查询审计日志失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, logs, pageInfo)
}
