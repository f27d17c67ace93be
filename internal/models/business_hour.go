package models

// BusinessHour 营业时间模型，每个租户每个星期几一行
type BusinessHour struct {
	BaseModel
	TenantID  uint   `json:"tenant_id" gorm:"not null;uniqueIndex:idx_tenant_weekday"`
	Weekday   int    `json:"weekday" gorm:"not null;uniqueIndex:idx_tenant_weekday"` // 0=周日 ... 6=周六
	OpenTime  string `json:"open_time" gorm:"size:5;default:'10:00'"`                // HH:MM
	CloseTime string `json:"close_time" gorm:"size:5;default:'23:00'"`               // HH:MM
	Closed    bool   `json:"closed" gorm:"default:false"`

	// 关联
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (BusinessHour) TableName() string {
	return "business_hours"
}
