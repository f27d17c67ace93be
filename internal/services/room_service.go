package services

import (
	"context"
	"fmt"

	"kbox/internal/database"
	"kbox/internal/models"

	"gorm.io/gorm"
)

// RoomService 包厢管理
// 所有查询都经过WithTenantContext，行级安全策略兜底过滤
type RoomService struct {
	db *gorm.DB
}

func NewRoomService() *RoomService {
	return &RoomService{db: database.GetDB()}
}

// ListActive 当前租户的可用包厢
func (s *RoomService) ListActive(ctx context.Context, tenantID uint) ([]*models.Room, error) {
	var rooms []*models.Room
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		return tx.Where("status = ?", models.RoomStatusActive).
			Order("sort_order, id").
			Find(&rooms).Error
	})
	return rooms, err
}

// ListAll 当前租户的全部包厢（仪表盘）
func (s *RoomService) ListAll(ctx context.Context, tenantID uint) ([]*models.Room, error) {
	var rooms []*models.Room
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		return tx.Order("sort_order, id").Find(&rooms).Error
	})
	return rooms, err
}

// GetByID 获取单个包厢
func (s *RoomService) GetByID(ctx context.Context, tenantID, roomID uint) (*models.Room, error) {
	var room models.Room
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		return tx.First(&room, roomID).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Create 创建包厢
func (s *RoomService) Create(ctx context.Context, tenantID uint, room *models.Room) error {
	if err := s.validate(room); err != nil {
		return err
	}

	room.TenantID = tenantID
	if room.Status == "" {
		room.Status = models.RoomStatusActive
	}

	return database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		recordAudit(tx, tenantID, "dashboard", "room.create", "room", room.ID, room)
		return nil
	})
}

// Update 更新包厢
func (s *RoomService) Update(ctx context.Context, tenantID, roomID uint, updates *models.Room) (*models.Room, error) {
	if err := s.validate(updates); err != nil {
		return nil, err
	}

	var room models.Room
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		if err := tx.First(&room, roomID).Error; err != nil {
			return err
		}

		room.Name = updates.Name
		room.Capacity = updates.Capacity
		room.HourlyRate = updates.HourlyRate
		room.Description = updates.Description
		room.SortOrder = updates.SortOrder
		if updates.Status != "" {
			room.Status = updates.Status
		}

		if err := tx.Save(&room).Error; err != nil {
			return err
		}
		recordAudit(tx, tenantID, "dashboard", "room.update", "room", room.ID, updates)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Delete 删除包厢
func (s *RoomService) Delete(ctx context.Context, tenantID, roomID uint) error {
	return database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		result := tx.Delete(&models.Room{}, roomID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		recordAudit(tx, tenantID, "dashboard", "room.delete", "room", roomID, nil)
		return nil
	})
}

// validate 包厢参数校验
func (s *RoomService) validate(room *models.Room) error {
	if room.Name == "" {
		return fmt.Errorf("包厢名称不能为空")
	}
	if room.Capacity <= 0 {
		return fmt.Errorf("包厢容量必须大于0")
	}
	if room.HourlyRate < 0 {
		return fmt.Errorf("包厢时租不能为负数")
	}
	return nil
}
