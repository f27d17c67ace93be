package models

import (
	"time"
)

// Booking 预订模型
type Booking struct {
	BaseModel
	TenantID      uint      `json:"tenant_id" gorm:"not null;index:idx_tenant_start"`
	RoomID        uint      `json:"room_id" gorm:"not null;index"`
	Reference     string    `json:"reference" gorm:"size:36;uniqueIndex"` // 对外预订号（uuid）
	CustomerName  string    `json:"customer_name" gorm:"not null;size:100"`
	CustomerPhone string    `json:"customer_phone" gorm:"size:30"`
	CustomerEmail string    `json:"customer_email" gorm:"size:100"`
	StartTime     time.Time `json:"start_time" gorm:"not null;index:idx_tenant_start"`
	EndTime       time.Time `json:"end_time" gorm:"not null"`
	Price         int64     `json:"price" gorm:"not null;default:0"` // 总价（分），缺省按包厢时租计算
	Status        string    `json:"status" gorm:"default:'pending';size:20;index"`
	Note          string    `json:"note" gorm:"size:500"`

	// 关联
	Room   *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}

// 预订状态常量
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)
