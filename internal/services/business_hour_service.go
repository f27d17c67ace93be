package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kbox/internal/database"
	"kbox/internal/models"

	"gorm.io/gorm"
)

// BusinessHourService 营业时间管理
type BusinessHourService struct {
	db *gorm.DB
}

// HourEntry 批量更新条目
type HourEntry struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Closed    bool   `json:"closed"`
}

func NewBusinessHourService() *BusinessHourService {
	return &BusinessHourService{db: database.GetDB()}
}

// List 当前租户的周营业表，按星期几排序
func (s *BusinessHourService) List(ctx context.Context, tenantID uint) ([]*models.BusinessHour, error) {
	var hours []*models.BusinessHour
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		return tx.Order("weekday").Find(&hours).Error
	})
	return hours, err
}

// BulkUpsert 整表更新周营业表，一个事务内完成
func (s *BusinessHourService) BulkUpsert(ctx context.Context, tenantID uint, entries []HourEntry) ([]*models.BusinessHour, error) {
	if err := validateHourEntries(entries); err != nil {
		return nil, err
	}

	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		for _, entry := range entries {
			var hour models.BusinessHour
			err := tx.Where("weekday = ?", entry.Weekday).First(&hour).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				hour = models.BusinessHour{
					TenantID: tenantID,
					Weekday:  entry.Weekday,
				}
			} else if err != nil {
				return err
			}

			hour.OpenTime = entry.OpenTime
			hour.CloseTime = entry.CloseTime
			hour.Closed = entry.Closed
			if err := tx.Save(&hour).Error; err != nil {
				return err
			}
		}
		recordAudit(tx, tenantID, "dashboard", "business_hours.update", "business_hour", 0, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.List(ctx, tenantID)
}

// validateHourEntries 校验批量条目：星期几不重复，时间格式HH:MM
func validateHourEntries(entries []HourEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("营业时间条目不能为空")
	}

	seen := make(map[int]bool)
	for _, entry := range entries {
		if entry.Weekday < 0 || entry.Weekday > 6 {
			return fmt.Errorf("星期几必须在0-6之间")
		}
		if seen[entry.Weekday] {
			return fmt.Errorf("星期 %d 出现了多次", entry.Weekday)
		}
		seen[entry.Weekday] = true

		if entry.Closed {
			continue
		}
		open, err := time.Parse("15:04", entry.OpenTime)
		if err != nil {
			return fmt.Errorf("开门时间格式错误，应为HH:MM")
		}
		closeT, err := time.Parse("15:04", entry.CloseTime)
		if err != nil {
			return fmt.Errorf("关门时间格式错误，应为HH:MM")
		}
		if !closeT.After(open) {
			return fmt.Errorf("关门时间必须晚于开门时间")
		}
	}
	return nil
}
