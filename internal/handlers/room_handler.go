package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kbox/internal/database"
	"kbox/internal/demo"
	"kbox/internal/middleware"
	"kbox/internal/models"
	"kbox/internal/services"
	kerrors "kbox/pkg/errors"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoomRequest 包厢创建/更新请求
type RoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity"`
	HourlyRate  int64  `json:"hourly_rate"`
	Status      string `json:"status"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type RoomHandler struct {
	service *services.RoomService
}

func NewRoomHandler(service *services.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List 当前租户的可用包厢
func (h *RoomHandler) List(c *gin.Context) {
	if middleware.IsDemoMode(c) {
		response.Success(c, demo.Rooms())
		return
	}

	tenant := middleware.GetTenant(c)
	rooms, err := h.service.ListActive(c.Request.Context(), tenant.ID)
	if err != nil {
		handleTenantQueryError(c, err, "查询包厢失败")
		return
	}

	response.Success(c, rooms)
}

// Create 创建包厢
func (h *RoomHandler) Create(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room := &models.Room{
		Name:        req.Name,
		Capacity:    req.Capacity,
		HourlyRate:  req.HourlyRate,
		Status:      req.Status,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}

	tenant := middleware.GetTenant(c)
	if err := h.service.Create(c.Request.Context(), tenant.ID, room); err != nil {
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		handleTenantQueryError(c, err, "创建包厢失败")
		return
	}

	response.Success(c, room)
}

// Update 更新包厢
func (h *RoomHandler) Update(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	updates := &models.Room{
		Name:        req.Name,
		Capacity:    req.Capacity,
		HourlyRate:  req.HourlyRate,
		Status:      req.Status,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}

	tenant := middleware.GetTenant(c)
	room, err := h.service.Update(c.Request.Context(), tenant.ID, uint(roomID), updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "包厢不存在")
			return
		}
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		handleTenantQueryError(c, err, "更新包厢失败")
		return
	}

	response.Success(c, room)
}

// Delete 删除包厢
func (h *RoomHandler) Delete(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenant := middleware.GetTenant(c)
	if err := h.service.Delete(c.Request.Context(), tenant.ID, uint(roomID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "包厢不存在")
			return
		}
		handleTenantQueryError(c, err, "删除包厢失败")
		return
	}

	response.Success(c, nil)
}

// ========== 公共辅助 ==========

// rejectDemoWrite 演示模式拒绝写操作
func rejectDemoWrite(c *gin.Context) bool {
	if middleware.IsDemoMode(c) {
		response.Error(c, http.StatusForbidden, kerrors.ErrDemoReadOnly, "演示模式不支持写操作")
		return true
	}
	return false
}

// handleTenantQueryError 租户查询错误的统一映射
// 上下文绑定失败是基础设施故障：宁可500也不能在无隔离保障的情况下继续
func handleTenantQueryError(c *gin.Context, err error, message string) {
	if database.IsBindFailure(err) {
		response.Error(c, http.StatusInternalServerError, kerrors.ErrContextBind, "租户上下文绑定失败")
		return
	}
	response.ServerError(c, message)
}

// isValidationError 服务层校验错误（中文提示直接透给调用方）
func isValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "不能为空") ||
		strings.Contains(msg, "必须大于") ||
		strings.Contains(msg, "不能为负数") ||
		strings.Contains(msg, "格式错误") ||
		strings.Contains(msg, "超长")
}
