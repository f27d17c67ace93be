package database

import (
	"fmt"

	"gorm.io/gorm"
)

// 受行级安全策略保护的租户表
// 新增租户表必须加入这个列表，否则没有隔离保障
var tenantScopedTables = []string{
	"rooms",
	"bookings",
	"business_hours",
	"settings",
	"audit_logs",
}

// 会话级租户上下文函数
// set_config第三个参数为true：绑定只在当前事务内有效，
// 事务结束即失效，连接归还连接池后不会把上一个请求的租户带给下一个请求
const setTenantContextFn = `
CREATE OR REPLACE FUNCTION set_tenant_context(tenant_id_param BIGINT)
RETURNS VOID AS $$
BEGIN
    PERFORM set_config('app.current_tenant_id', tenant_id_param::TEXT, true);
END;
$$ LANGUAGE plpgsql SECURITY DEFINER;
`

// 读取当前租户；未绑定时返回NULL，策略比较结果为假，查不出任何行（默认拒绝）
const getCurrentTenantFn = `
CREATE OR REPLACE FUNCTION get_current_tenant_id()
RETURNS BIGINT AS $$
BEGIN
    RETURN NULLIF(current_setting('app.current_tenant_id', true), '')::BIGINT;
END;
$$ LANGUAGE plpgsql STABLE;
`

// SetupRowLevelSecurity 创建租户上下文函数并为所有租户表启用隔离策略
// 策略由数据库引擎执行：即使业务代码漏写WHERE条件，跨租户的行也不可见
func SetupRowLevelSecurity(db *gorm.DB) error {
	if err := db.Exec(setTenantContextFn).Error; err != nil {
		return fmt.Errorf("创建set_tenant_context函数失败: %v", err)
	}
	if err := db.Exec(getCurrentTenantFn).Error; err != nil {
		return fmt.Errorf("创建get_current_tenant_id函数失败: %v", err)
	}

	for _, table := range tenantScopedTables {
		stmts := []string{
			fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", table),
			// FORCE：表属主也不能绕过策略
			fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", table),
			fmt.Sprintf("DROP POLICY IF EXISTS tenant_isolation ON %s", table),
			fmt.Sprintf(`CREATE POLICY tenant_isolation ON %s
				USING (tenant_id = get_current_tenant_id())
				WITH CHECK (tenant_id = get_current_tenant_id())`, table),
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("为表 %s 配置行级安全策略失败: %v", table, err)
			}
		}
	}

	return nil
}
