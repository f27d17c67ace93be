package models

// Room 包厢模型
// tenant_id由行级安全策略兜底过滤，业务代码不依赖WHERE条件保证隔离
type Room struct {
	BaseModel
	TenantID    uint   `json:"tenant_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null;size:100"`
	Capacity    int    `json:"capacity" gorm:"default:4"`
	HourlyRate  int64  `json:"hourly_rate" gorm:"not null;default:0"` // 每小时价格（分）
	Status      string `json:"status" gorm:"default:'active';size:20"`
	Description string `json:"description" gorm:"size:500"`
	SortOrder   int    `json:"sort_order" gorm:"default:0"`

	// 关联
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Room) TableName() string {
	return "rooms"
}

// 包厢状态常量
const (
	RoomStatusActive   = "active"
	RoomStatusInactive = "inactive"
)
