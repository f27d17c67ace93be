package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"kbox/internal/database"
	"kbox/internal/models"
	"kbox/pkg/cache"
	"kbox/pkg/config"
	"kbox/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TenantService 租户目录：子域名→租户的唯一查询入口
type TenantService struct {
	db       *gorm.DB
	cache    *cache.RedisCache
	cacheTTL time.Duration
}

// TenantStats 租户统计信息
type TenantStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Suspended int64 `json:"suspended"`
}

func NewTenantService() *TenantService {
	cfg := config.GetConfig()
	return &TenantService{
		db:       database.GetDB(),
		cache:    database.GetCache(),
		cacheTTL: time.Duration(cfg.Tenant.CacheTTLSeconds) * time.Second,
	}
}

// ResolveBySubdomain 按子域名解析租户
// 仅做目录查找，不判断状态：状态校验由请求管线负责，
// 这样403才能向调用方披露当前状态
// 未知子域名返回gorm.ErrRecordNotFound，与基础设施故障区分开
func (s *TenantService) ResolveBySubdomain(subdomain string) (*models.Tenant, error) {
	ctx := context.Background()

	// 先查目录缓存
	var cached models.Tenant
	if err := s.cache.GetTenant(ctx, subdomain, &cached); err == nil {
		return &cached, nil
	}

	var tenant models.Tenant
	if err := s.db.Where("subdomain = ?", subdomain).First(&tenant).Error; err != nil {
		return nil, err
	}

	// 回填缓存，失败不影响解析结果
	if err := s.cache.SetTenant(ctx, subdomain, &tenant, s.cacheTTL); err != nil {
		logger.GetLogger().Warnf("租户目录缓存写入失败: %v", err)
	}

	return &tenant, nil
}

// invalidate 租户变更后失效目录缓存
func (s *TenantService) invalidate(subdomain string) {
	if err := s.cache.DeleteTenant(context.Background(), subdomain); err != nil {
		logger.GetLogger().Warnf("租户目录缓存失效失败: %v", err)
	}
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *TenantService) GetWithFiltersAndPage(status, keyword string, page, pageSize int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	query := s.db.Model(&models.Tenant{})

	// 添加过滤条件
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR subdomain LIKE ?", searchPattern, searchPattern)
	}

	// 计算总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// Create 创建租户（开通入口）
func (s *TenantService) Create(name, subdomain string, plan models.PlanTier) (*models.Tenant, error) {
	if err := s.ValidateCreateParams(name, subdomain); err != nil {
		return nil, err
	}
	if !plan.Valid() {
		plan = models.PlanFree
	}

	// 检查子域名是否重复
	var count int64
	s.db.Model(&models.Tenant{}).Where("subdomain = ?", subdomain).Count(&count)
	if count > 0 {
		return nil, gorm.ErrDuplicatedKey
	}

	tenant := &models.Tenant{
		Name:      name,
		Subdomain: subdomain,
		Plan:      plan,
		Status:    models.TenantStatusActive,
		Settings:  datatypes.JSON([]byte("{}")),
	}

	err := s.db.Create(tenant).Error
	return tenant, err
}

// GetByID 根据ID获取租户
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	return &tenant, err
}

// Update 更新租户（管理端：名称/状态/套餐）
func (s *TenantService) Update(id uint, name, status string, plan models.PlanTier) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	if err != nil {
		return nil, err
	}

	if name != "" {
		if !s.ValidateName(name) {
			return nil, fmt.Errorf("租户名称长度必须在2-50个字符之间")
		}
		tenant.Name = name
	}
	if status != "" {
		if !s.IsValidStatus(status) {
			return nil, fmt.Errorf("状态只能为 active/inactive/suspended")
		}
		tenant.Status = status
	}
	if plan.Valid() {
		tenant.Plan = plan
	}

	if err := s.db.Save(&tenant).Error; err != nil {
		return nil, err
	}
	s.invalidate(tenant.Subdomain)
	return &tenant, nil
}

// UpdateProfile 更新租户自己的资料（公开接口：名称和设置）
func (s *TenantService) UpdateProfile(id uint, name string, settings datatypes.JSON) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		return nil, err
	}

	if name != "" {
		if !s.ValidateName(name) {
			return nil, fmt.Errorf("租户名称长度必须在2-50个字符之间")
		}
		tenant.Name = name
	}
	if settings != nil {
		tenant.Settings = settings
	}

	if err := s.db.Save(&tenant).Error; err != nil {
		return nil, err
	}
	s.invalidate(tenant.Subdomain)
	return &tenant, nil
}

// Delete 删除租户（级联清除租户数据，仅平台管理员可用）
func (s *TenantService) Delete(id uint) error {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&tenant).Error; err != nil {
		return err
	}
	s.invalidate(tenant.Subdomain)
	return nil
}

// setStatus 状态翻转的公共实现
func (s *TenantService) setStatus(id uint, status string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	if err != nil {
		return nil, err
	}

	tenant.Status = status
	if err := s.db.Save(&tenant).Error; err != nil {
		return nil, err
	}
	s.invalidate(tenant.Subdomain)
	return &tenant, nil
}

// Activate 激活租户
func (s *TenantService) Activate(id uint) (*models.Tenant, error) {
	return s.setStatus(id, models.TenantStatusActive)
}

// Deactivate 停用租户
func (s *TenantService) Deactivate(id uint) (*models.Tenant, error) {
	return s.setStatus(id, models.TenantStatusInactive)
}

// Suspend 暂停租户（欠费/违规）
func (s *TenantService) Suspend(id uint) (*models.Tenant, error) {
	return s.setStatus(id, models.TenantStatusSuspended)
}

// GetStats 获取租户统计
func (s *TenantService) GetStats() (*TenantStats, error) {
	stats := &TenantStats{}

	s.db.Model(&models.Tenant{}).Count(&stats.Total)
	s.db.Model(&models.Tenant{}).Where("status = ?", models.TenantStatusActive).Count(&stats.Active)
	s.db.Model(&models.Tenant{}).Where("status = ?", models.TenantStatusInactive).Count(&stats.Inactive)
	s.db.Model(&models.Tenant{}).Where("status = ?", models.TenantStatusSuspended).Count(&stats.Suspended)

	return stats, nil
}

// GetAllActiveIDs 所有激活租户的ID（清理调度器用）
func (s *TenantService) GetAllActiveIDs() ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Tenant{}).
		Where("status = ?", models.TenantStatusActive).
		Pluck("id", &ids).Error
	return ids, err
}

// IsValidStatus 检查租户状态是否有效
func (s *TenantService) IsValidStatus(status string) bool {
	switch status {
	case models.TenantStatusActive, models.TenantStatusInactive, models.TenantStatusSuspended:
		return true
	default:
		return false
	}
}

// IsActive 检查租户是否激活
func (s *TenantService) IsActive(tenant *models.Tenant) bool {
	return tenant.Status == models.TenantStatusActive
}

// ========== 验证相关方法 ==========

// ValidateName 名称长度按字符数计算
func (s *TenantService) ValidateName(name string) bool {
	runeCount := utf8.RuneCountInString(name)
	return runeCount >= 2 && runeCount <= 50
}

// IsValidSubdomain 子域名：2-63位小写字母数字或连字符，不以连字符开头结尾
// 请求绑定的自定义校验器也用这个函数（见router）
func IsValidSubdomain(subdomain string) bool {
	if len(subdomain) < 2 || len(subdomain) > 63 {
		return false
	}
	if subdomain[0] == '-' || subdomain[len(subdomain)-1] == '-' {
		return false
	}
	for _, r := range subdomain {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	// www保留给主站
	return subdomain != "www"
}

// ValidateSubdomain 子域名校验
func (s *TenantService) ValidateSubdomain(subdomain string) bool {
	return IsValidSubdomain(subdomain)
}

// ValidateCreateParams 创建参数校验
func (s *TenantService) ValidateCreateParams(name, subdomain string) error {
	if !s.ValidateName(name) {
		return fmt.Errorf("租户名称长度必须在2-50个字符之间")
	}
	if !s.ValidateSubdomain(subdomain) {
		return fmt.Errorf("子域名格式错误：2-63位小写字母、数字或连字符")
	}
	return nil
}
