package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog 审计日志，记录租户内的写操作
type AuditLog struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	TenantID     uint           `json:"tenant_id" gorm:"not null;index"`
	Actor        string         `json:"actor" gorm:"size:100"` // 操作来源（api / dashboard / system）
	Action       string         `json:"action" gorm:"not null;size:50"`
	ResourceType string         `json:"resource_type" gorm:"not null;size:50"`
	ResourceID   uint           `json:"resource_id"`
	Detail       datatypes.JSON `json:"detail" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`

	// 关联
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}
