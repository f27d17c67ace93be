package models

// AdminUser 平台管理员，不属于任何租户，不受行级安全策略约束
type AdminUser struct {
	BaseModel
	Username     string `json:"username" gorm:"unique;not null;size:50"`
	PasswordHash string `json:"-" gorm:"not null;size:100"`
	Status       string `json:"status" gorm:"default:'active';size:20"`
}

// TableName 表名
func (AdminUser) TableName() string {
	return "admin_users"
}

// 管理员状态常量
const (
	AdminStatusActive   = "active"
	AdminStatusInactive = "inactive"
)
