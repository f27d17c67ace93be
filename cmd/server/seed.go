package main

import (
	"fmt"

	"kbox/internal/database"
	"kbox/internal/demo"
	"kbox/internal/models"
	"kbox/pkg/config"
	"kbox/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建默认租户（营销站落到这里）
	if err := createDefaultTenant(db); err != nil {
		return fmt.Errorf("创建默认租户失败: %v", err)
	}

	// 2. 创建默认平台管理员
	if err := createDefaultAdmin(db); err != nil {
		return fmt.Errorf("创建默认管理员失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultTenant 创建默认租户及其示例数据
func createDefaultTenant(db *gorm.DB) error {
	cfg := config.GetConfig()
	subdomain := cfg.Tenant.DefaultSubdomain

	var count int64
	db.Model(&models.Tenant{}).Where("subdomain = ?", subdomain).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("默认租户已存在，跳过创建")
		return nil
	}

	tenant := demo.Tenant()
	tenant.Subdomain = subdomain

	if err := db.Create(tenant).Error; err != nil {
		return err
	}

	// 示例数据也走租户事务写入：种子流程同样不绕过隔离策略
	return database.WithTenant(db, tenant.ID, func(tx *gorm.DB) error {
		for _, room := range demo.Rooms() {
			room.TenantID = tenant.ID
			if err := tx.Create(room).Error; err != nil {
				return err
			}
		}
		for _, hour := range demo.BusinessHours() {
			hour.TenantID = tenant.ID
			if err := tx.Create(hour).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// createDefaultAdmin 创建默认平台管理员
func createDefaultAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.AdminUser{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("默认管理员已存在，跳过创建")
		return nil
	}

	password := "admin123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.AdminUser{
		Username:     "admin",
		PasswordHash: string(hash),
		Status:       models.AdminStatusActive,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Warn("已创建默认管理员 admin/admin123，请立即修改密码")
	return nil
}
