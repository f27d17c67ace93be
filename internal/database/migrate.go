package database

import (
	"kbox/internal/models"
	"kbox/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.Tenant{},
		&models.AdminUser{},
		// 租户表
		&models.Room{},
		&models.Booking{},
		&models.BusinessHour{},
		&models.Setting{},
		&models.AuditLog{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	// 表结构就绪后安装隔离策略，顺序不能反
	if err := SetupRowLevelSecurity(DB); err != nil {
		appLogger.Errorf("Row level security setup failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	return nil
}
