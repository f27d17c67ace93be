package models

// Setting 租户级K/V配置
type Setting struct {
	BaseModel
	TenantID uint   `json:"tenant_id" gorm:"not null;uniqueIndex:idx_tenant_key"`
	Key      string `json:"key" gorm:"not null;size:100;uniqueIndex:idx_tenant_key"`
	Value    string `json:"value" gorm:"size:1000"`

	// 关联
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
