package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 绑定失败的哨兵错误，处理器层据此返回500并中止请求
var (
	ErrNoTenant   = errors.New("租户上下文缺失，拒绝执行查询")
	ErrBindFailed = errors.New("绑定租户上下文失败")
)

// WithTenant 在一个事务内绑定租户上下文并执行业务查询
//
// 纪律（全仓库唯一允许的租户查询入口）：
//  1. 绑定必须是事务的第一条语句；
//  2. 绑定与业务查询始终在同一个事务、同一个连接上，
//     连接池复用不可能把旧租户的绑定带进来；
//  3. 绑定失败立即回滚，业务查询一条都不会执行；
//  4. 事务结束绑定随之失效，不存在跨请求的残留状态。
func WithTenant(db *gorm.DB, tenantID uint, fn func(tx *gorm.DB) error) error {
	if tenantID == 0 {
		return ErrNoTenant
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT set_tenant_context(?)", int64(tenantID)).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrBindFailed, err)
		}
		return fn(tx)
	})
}

// WithTenantContext 带取消的版本：请求超时/取消时事务回滚，不会提交半个请求的写入
func WithTenantContext(ctx context.Context, db *gorm.DB, tenantID uint, fn func(tx *gorm.DB) error) error {
	return WithTenant(db.WithContext(ctx), tenantID, fn)
}

// IsBindFailure 判断错误是否为租户上下文绑定失败
func IsBindFailure(err error) bool {
	return errors.Is(err, ErrBindFailed) || errors.Is(err, ErrNoTenant)
}
