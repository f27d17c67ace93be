package handlers

import (
	"errors"
	"strconv"
	"time"

	"kbox/internal/demo"
	"kbox/internal/middleware"
	"kbox/internal/services"
	"kbox/pkg/pagination"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateBookingRequest 创建预订请求
type CreateBookingRequest struct {
	RoomID        uint      `json:"roomId" binding:"required"`
	CustomerName  string    `json:"customerName" binding:"required"`
	CustomerPhone string    `json:"customerPhone"`
	CustomerEmail string    `json:"customerEmail" binding:"omitempty,email"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
	Price         int64     `json:"price"` // 缺省按包厢时租计算
	Note          string    `json:"note"`
}

// UpdateBookingStatusRequest 预订状态变更请求
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List 当前租户的预订（分页，可按日期/状态过滤）
func (h *BookingHandler) List(c *gin.Context) {
	if middleware.IsDemoMode(c) {
		response.Success(c, demo.Bookings())
		return
	}

	pageParams := pagination.ParsePageParams(c)
	date := c.Query("date")
	status := c.Query("status")

	tenant := middleware.GetTenant(c)
	bookings, total, err := h.service.ListWithPage(
		c.Request.Context(), tenant.ID, date, status,
		pageParams.Page, pageParams.PageSize)
	if err != nil {
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		handleTenantQueryError(c, err, "查询预订失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, bookings, pageInfo)
}

// Create 创建预订
func (h *BookingHandler) Create(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	params := &services.CreateBookingParams{
		RoomID:        req.RoomID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Price:         req.Price,
		Note:          req.Note,
	}

	tenant := middleware.GetTenant(c)
	booking, err := h.service.Create(c.Request.Context(), tenant.ID, params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomUnavailable):
			response.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidTimeRange) || isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			handleTenantQueryError(c, err, "创建预订失败")
		}
		return
	}

	response.Success(c, booking)
}

// UpdateStatus 变更预订状态
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	if !h.service.IsValidStatus(req.Status) {
		response.BadRequest(c, "未知的预订状态")
		return
	}

	tenant := middleware.GetTenant(c)
	booking, err := h.service.UpdateStatus(c.Request.Context(), tenant.ID, uint(bookingID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c, "预订不存在")
		case errors.Is(err, services.ErrInvalidTransition):
			response.BadRequest(c, err.Error())
		default:
			handleTenantQueryError(c, err, "状态变更失败")
		}
		return
	}

	response.Success(c, booking)
}

// Cancel 取消预订
func (h *BookingHandler) Cancel(c *gin.Context) {
	if rejectDemoWrite(c) {
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenant := middleware.GetTenant(c)
	booking, err := h.service.Cancel(c.Request.Context(), tenant.ID, uint(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c, "预订不存在")
		case errors.Is(err, services.ErrInvalidTransition):
			response.BadRequest(c, err.Error())
		default:
			handleTenantQueryError(c, err, "取消预订失败")
		}
		return
	}

	response.Success(c, booking)
}
