package handlers

import (
	"errors"
	"strconv"
	"strings"

	"kbox/internal/models"
	"kbox/internal/services"
	"kbox/pkg/pagination"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTenantRequest 开通租户请求
type CreateTenantRequest struct {
	Name      string `json:"name" binding:"required"`
	Subdomain string `json:"subdomain" binding:"required,subdomain"`
	Plan      string `json:"plan"`
}

// UpdateTenantRequest 管理端更新租户请求
type UpdateTenantRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Plan   string `json:"plan"`
}

// AdminTenantHandler 平台管理端的租户管理
type AdminTenantHandler struct {
	service *services.TenantService
}

func NewAdminTenantHandler(service *services.TenantService) *AdminTenantHandler {
	return &AdminTenantHandler{service: service}
}

// Create 开通租户
func (h *AdminTenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	plan := models.PlanFree
	if req.Plan != "" {
		parsed, err := models.ParsePlanTier(req.Plan)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		plan = parsed
	}

	tenant, err := h.service.Create(req.Name, req.Subdomain, plan)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.BadRequest(c, "子域名已被占用")
			return
		}

		errMsg := err.Error()
		if strings.Contains(errMsg, "租户名称长度") || strings.Contains(errMsg, "子域名格式") {
			response.BadRequest(c, errMsg)
			return
		}

		response.ServerError(c, "创建失败")
		return
	}

	response.Success(c, tenant)
}

// GetByID 获取租户
func (h *AdminTenantHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenant, err := h.service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租户不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, tenant)
}

// GetAll 租户列表（分页，支持状态筛选和关键词搜索）
func (h *AdminTenantHandler) GetAll(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)

	status := c.Query("status")
	keyword := c.Query("keyword")

	tenants, total, err := h.service.GetWithFiltersAndPage(status, keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, tenants, pageInfo)
}

// Update 更新租户
func (h *AdminTenantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	plan := models.PlanTier(-1) // 不更新套餐
	if req.Plan != "" {
		parsed, perr := models.ParsePlanTier(req.Plan)
		if perr != nil {
			response.BadRequest(c, perr.Error())
			return
		}
		plan = parsed
	}

	tenant, err := h.service.Update(uint(id), req.Name, req.Status, plan)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租户不存在")
			return
		}

		errMsg := err.Error()
		if strings.Contains(errMsg, "租户名称长度") || strings.Contains(errMsg, "状态只能") {
			response.BadRequest(c, errMsg)
			return
		}

		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, tenant)
}

// Delete 删除租户（级联清除所有租户数据）
func (h *AdminTenantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租户不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}

// Activate 激活租户
func (h *AdminTenantHandler) Activate(c *gin.Context) {
	h.setStatus(c, h.service.Activate, "激活失败")
}

// Deactivate 停用租户
func (h *AdminTenantHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, h.service.Deactivate, "停用失败")
}

// Suspend 暂停租户
func (h *AdminTenantHandler) Suspend(c *gin.Context) {
	h.setStatus(c, h.service.Suspend, "暂停失败")
}

// setStatus 状态翻转的公共处理
func (h *AdminTenantHandler) setStatus(c *gin.Context, op func(uint) (*models.Tenant, error), failMsg string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenant, err := op(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租户不存在")
			return
		}
		response.ServerError(c, failMsg)
		return
	}

	response.Success(c, tenant)
}

// GetStats 租户统计
func (h *AdminTenantHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats()
	if err != nil {
		response.ServerError(c, "获取统计失败")
		return
	}

	response.Success(c, stats)
}
