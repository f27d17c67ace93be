package services

import (
	"context"
	"encoding/json"

	"kbox/internal/database"
	"kbox/internal/models"
	"kbox/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService 审计日志查询
type AuditService struct {
	db *gorm.DB
}

func NewAuditService() *AuditService {
	return &AuditService{db: database.GetDB()}
}

// ListWithPage 分页查询审计日志（租户上下文内）
func (s *AuditService) ListWithPage(ctx context.Context, tenantID uint, page, pageSize int) ([]*models.AuditLog, int64, error) {
	var logs []*models.AuditLog
	var total int64

	err := database.WithTenantContext(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		if err := tx.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
			return err
		}
		offset := (page - 1) * pageSize
		return tx.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&logs).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// recordAudit 在已绑定租户上下文的事务内追加一条审计记录
// 与业务写入同事务提交：业务回滚审计也回滚
func recordAudit(tx *gorm.DB, tenantID uint, actor, action, resourceType string, resourceID uint, detail interface{}) {
	var detailJSON datatypes.JSON
	if detail != nil {
		if data, err := json.Marshal(detail); err == nil {
			detailJSON = datatypes.JSON(data)
		}
	}

	entry := &models.AuditLog{
		TenantID:     tenantID,
		Actor:        actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detailJSON,
	}

	// 审计失败只记日志，不阻断业务
	if err := tx.Create(entry).Error; err != nil {
		logger.GetLogger().Warnf("写入审计日志失败: %v", err)
	}
}
