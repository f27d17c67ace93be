package services

import (
	"fmt"
	"time"

	"kbox/internal/database"
	"kbox/internal/models"
	"kbox/pkg/config"
	"kbox/pkg/logger"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CleanupService 后台清理调度器
// 过期未确认的预订自动取消、审计日志按保留期裁剪
// 清理也逐租户走WithTenant：后台任务同样不绕过隔离策略
type CleanupService struct {
	db            *gorm.DB
	cron          *cron.Cron
	tenantService *TenantService
	pendingExpire time.Duration
	auditRetain   time.Duration
}

func NewCleanupService(tenantService *TenantService) *CleanupService {
	cfg := config.GetConfig()
	return &CleanupService{
		db:            database.GetDB(),
		cron:          cron.New(),
		tenantService: tenantService,
		pendingExpire: time.Duration(cfg.Cleanup.PendingExpireMins) * time.Minute,
		auditRetain:   time.Duration(cfg.Cleanup.AuditRetainDays) * 24 * time.Hour,
	}
}

// Start 启动清理调度
func (s *CleanupService) Start() error {
	// 每10分钟取消超时未确认的预订
	if _, err := s.cron.AddFunc("*/10 * * * *", s.expirePendingBookings); err != nil {
		return fmt.Errorf("注册预订清理任务失败: %v", err)
	}

	// 每天凌晨3点裁剪审计日志
	if _, err := s.cron.AddFunc("0 3 * * *", s.trimAuditLogs); err != nil {
		return fmt.Errorf("注册审计裁剪任务失败: %v", err)
	}

	s.cron.Start()
	logger.GetLogger().Info("Cleanup scheduler started")
	return nil
}

// Stop 停止清理调度
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.GetLogger().Info("Cleanup scheduler stopped")
}

// expirePendingBookings 取消超时未确认的预订
func (s *CleanupService) expirePendingBookings() {
	appLogger := logger.GetLogger()

	tenantIDs, err := s.tenantService.GetAllActiveIDs()
	if err != nil {
		appLogger.Errorf("清理任务获取租户列表失败: %v", err)
		return
	}

	cutoff := time.Now().Add(-s.pendingExpire)
	for _, tenantID := range tenantIDs {
		var expired int64
		err := database.WithTenant(s.db, tenantID, func(tx *gorm.DB) error {
			result := tx.Model(&models.Booking{}).
				Where("status = ? AND created_at < ?", models.BookingStatusPending, cutoff).
				Update("status", models.BookingStatusCancelled)
			expired = result.RowsAffected
			return result.Error
		})
		if err != nil {
			appLogger.Errorf("租户 %d 预订清理失败: %v", tenantID, err)
			continue
		}
		if expired > 0 {
			appLogger.Infof("租户 %d 取消超时预订 %d 条", tenantID, expired)
		}
	}
}

// trimAuditLogs 裁剪超过保留期的审计日志
func (s *CleanupService) trimAuditLogs() {
	appLogger := logger.GetLogger()

	tenantIDs, err := s.tenantService.GetAllActiveIDs()
	if err != nil {
		appLogger.Errorf("审计裁剪获取租户列表失败: %v", err)
		return
	}

	cutoff := time.Now().Add(-s.auditRetain)
	for _, tenantID := range tenantIDs {
		err := database.WithTenant(s.db, tenantID, func(tx *gorm.DB) error {
			return tx.Where("created_at < ?", cutoff).Delete(&models.AuditLog{}).Error
		})
		if err != nil {
			appLogger.Errorf("租户 %d 审计裁剪失败: %v", tenantID, err)
		}
	}
}
