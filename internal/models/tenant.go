package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Tenant 租户模型 - 贫血模型，只包含数据结构
// 子域名是路由键：请求Host头解析出的第一个标签
type Tenant struct {
	BaseModel
	Name      string         `json:"name" gorm:"not null;size:100"`
	Subdomain string         `json:"subdomain" gorm:"unique;not null;size:63;index"`
	Plan      PlanTier       `json:"plan" gorm:"type:varchar(20);default:'free'"`
	Status    string         `json:"status" gorm:"default:'active';size:20"`
	Settings  datatypes.JSON `json:"settings" gorm:"type:jsonb"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}

// 租户状态常量
// 租户不做物理删除，下线即状态翻转
const (
	TenantStatusActive    = "active"
	TenantStatusInactive  = "inactive"
	TenantStatusSuspended = "suspended"
)

// ========== 套餐等级 ==========

// PlanTier 套餐等级，显式全序：free < basic < pro < business
// 等级比较就是一次整数比较，不走映射表
type PlanTier int

const (
	PlanFree PlanTier = iota
	PlanBasic
	PlanPro
	PlanBusiness
)

var planNames = map[PlanTier]string{
	PlanFree:     "free",
	PlanBasic:    "basic",
	PlanPro:      "pro",
	PlanBusiness: "business",
}

// String 套餐名称
func (p PlanTier) String() string {
	if name, ok := planNames[p]; ok {
		return name
	}
	return "free"
}

// Valid 是否为已知套餐
func (p PlanTier) Valid() bool {
	_, ok := planNames[p]
	return ok
}

// Allows 当前套餐是否满足要求的最低套餐
func (p PlanTier) Allows(required PlanTier) bool {
	return p >= required
}

// ParsePlanTier 解析套餐名称
func ParsePlanTier(s string) (PlanTier, error) {
	for tier, name := range planNames {
		if name == s {
			return tier, nil
		}
	}
	return PlanFree, fmt.Errorf("未知的套餐等级: %s", s)
}

// Value 数据库存储为套餐名称文本
func (p PlanTier) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan 从数据库文本还原
func (p *PlanTier) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*p = PlanFree
		return nil
	default:
		return fmt.Errorf("无法将 %T 扫描为 PlanTier", value)
	}

	tier, err := ParsePlanTier(s)
	if err != nil {
		return err
	}
	*p = tier
	return nil
}

// MarshalJSON 序列化为套餐名称
func (p PlanTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON 从套餐名称反序列化
func (p *PlanTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tier, err := ParsePlanTier(s)
	if err != nil {
		return err
	}
	*p = tier
	return nil
}
