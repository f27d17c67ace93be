package services

import (
	"context"
	"errors"
	"fmt"

	"kbox/internal/database"
	"kbox/internal/models"

	"gorm.io/gorm"
)

// SettingService 租户K/V配置
type SettingService struct {
	db *gorm.DB
}

func NewSettingService() *SettingService {
	return &SettingService{db: database.GetDB()}
}

// List 当前租户的全部配置
func (s *SettingService) List(ctx context.Context, tenantID uint) ([]*models.Setting, error) {
	var settings []*models.Setting
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		return tx.Order("key").Find(&settings).Error
	})
	return settings, err
}

// Get 按键读取配置
func (s *SettingService) Get(ctx context.Context, tenantID uint, key string) (*models.Setting, error) {
	var setting models.Setting
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		return tx.Where("key = ?", key).First(&setting).Error
	})
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert 写入或更新配置
func (s *SettingService) Upsert(ctx context.Context, tenantID uint, key, value string) (*models.Setting, error) {
	if key == "" {
		return nil, fmt.Errorf("配置键不能为空")
	}
	if len(key) > 100 || len(value) > 1000 {
		return nil, fmt.Errorf("配置键或值超长")
	}

	var setting models.Setting
	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		err := tx.Where("key = ?", key).First(&setting).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = models.Setting{
				TenantID: tenantID,
				Key:      key,
			}
		} else if err != nil {
			return err
		}

		setting.Value = value
		if err := tx.Save(&setting).Error; err != nil {
			return err
		}
		recordAudit(tx, tenantID, "dashboard", "setting.update", "setting", setting.ID,
			map[string]string{"key": key})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
