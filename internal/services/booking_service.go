package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kbox/internal/database"
	"kbox/internal/models"
	"kbox/pkg/cache"
	"kbox/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 预订业务错误
var (
	ErrRoomUnavailable   = errors.New("包厢不存在或已下架")
	ErrInvalidTimeRange  = errors.New("结束时间必须晚于开始时间")
	ErrInvalidTransition = errors.New("不允许的状态变更")
)

// BookingService 预订管理
type BookingService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// CreateBookingParams 创建预订参数
type CreateBookingParams struct {
	RoomID        uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	StartTime     time.Time
	EndTime       time.Time
	Price         int64 // 0表示按包厢时租计算
	Note          string
}

func NewBookingService() *BookingService {
	return &BookingService{
		db:    database.GetDB(),
		cache: database.GetCache(),
	}
}

// ComputePrice 按时租计算总价：时租（分/小时）× 时长
// 不足一分钟的部分向上取整到分钟
func ComputePrice(hourlyRate int64, start, end time.Time) int64 {
	minutes := int64(end.Sub(start).Minutes())
	if minutes <= 0 {
		return 0
	}
	// 先乘后除避免精度丢失
	return hourlyRate * minutes / 60
}

// ValidateTimeRange 校验预订时间段
func ValidateTimeRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("开始和结束时间不能为空")
	}
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	if end.Sub(start) > 24*time.Hour {
		return fmt.Errorf("单次预订不能超过24小时")
	}
	return nil
}

// ListWithPage 分页查询预订（可按日期、状态过滤）
func (s *BookingService) ListWithPage(ctx context.Context, tenantID uint, date, status string, page, pageSize int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		query := tx.Model(&models.Booking{})

		if date != "" {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("日期格式错误，应为YYYY-MM-DD")
			}
			query = query.Where("start_time >= ? AND start_time < ?", day, day.Add(24*time.Hour))
		}
		if status != "" {
			query = query.Where("status = ?", status)
		}

		if err := query.Count(&total).Error; err != nil {
			return err
		}

		offset := (page - 1) * pageSize
		return query.Preload("Room").
			Order("start_time DESC").
			Offset(offset).Limit(pageSize).
			Find(&bookings).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// Create 创建预订
// 包厢查询和预订写入在同一个租户事务内：别的租户的包厢ID在这里查不到，
// 跨租户的包厢引用天然不可能成立
func (s *BookingService) Create(ctx context.Context, tenantID uint, params *CreateBookingParams) (*models.Booking, error) {
	if params.CustomerName == "" {
		return nil, fmt.Errorf("客户姓名不能为空")
	}
	if err := ValidateTimeRange(params.StartTime, params.EndTime); err != nil {
		return nil, err
	}

	var booking models.Booking
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Where("status = ?", models.RoomStatusActive).First(&room, params.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomUnavailable
			}
			return err
		}

		price := params.Price
		if price == 0 {
			price = ComputePrice(room.HourlyRate, params.StartTime, params.EndTime)
		}

		booking = models.Booking{
			TenantID:      tenantID,
			RoomID:        room.ID,
			Reference:     uuid.New().String(),
			CustomerName:  params.CustomerName,
			CustomerPhone: params.CustomerPhone,
			CustomerEmail: params.CustomerEmail,
			StartTime:     params.StartTime,
			EndTime:       params.EndTime,
			Price:         price,
			Status:        models.BookingStatusPending,
			Note:          params.Note,
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		recordAudit(tx, tenantID, "api", "booking.create", "booking", booking.ID, &booking)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, &booking, "created")
	return &booking, nil
}

// UpdateStatus 变更预订状态
func (s *BookingService) UpdateStatus(ctx context.Context, tenantID, bookingID uint, status string) (*models.Booking, error) {
	var booking models.Booking
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			return err
		}
		if !canTransition(booking.Status, status) {
			return ErrInvalidTransition
		}

		booking.Status = status
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		recordAudit(tx, tenantID, "dashboard", "booking.status", "booking", booking.ID,
			map[string]string{"status": status})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, &booking, "status_changed")
	return &booking, nil
}

// Cancel 取消预订
func (s *BookingService) Cancel(ctx context.Context, tenantID, bookingID uint) (*models.Booking, error) {
	return s.UpdateStatus(ctx, tenantID, bookingID, models.BookingStatusCancelled)
}

// canTransition 预订状态机
func canTransition(from, to string) bool {
	switch from {
	case models.BookingStatusPending:
		return to == models.BookingStatusConfirmed || to == models.BookingStatusCancelled
	case models.BookingStatusConfirmed:
		return to == models.BookingStatusCompleted || to == models.BookingStatusCancelled
	default:
		return false
	}
}

// IsValidStatus 检查预订状态是否有效
func (s *BookingService) IsValidStatus(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCancelled, models.BookingStatusCompleted:
		return true
	default:
		return false
	}
}

// publishEvent 向仪表盘实时流推送预订事件，失败只记日志
func (s *BookingService) publishEvent(ctx context.Context, booking *models.Booking, action string) {
	event := &cache.BookingEvent{
		TenantID:  booking.TenantID,
		Reference: booking.Reference,
		RoomID:    booking.RoomID,
		Action:    action,
		Status:    booking.Status,
		Created:   time.Now().Unix(),
	}
	if err := s.cache.PublishBookingEvent(ctx, event); err != nil {
		logger.GetLogger().Warnf("预订事件推送失败: %v", err)
	}
}
