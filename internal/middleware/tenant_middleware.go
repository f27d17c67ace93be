package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"kbox/internal/demo"
	"kbox/internal/models"
	"kbox/pkg/config"
	kerrors "kbox/pkg/errors"
	"kbox/pkg/logger"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 上下文键
const (
	ContextTenantKey = "tenant"
	ContextDemoKey   = "demo_mode"
)

// TenantDirectory 租户目录查询契约（中间件只依赖解析能力，便于测试替换）
type TenantDirectory interface {
	ResolveBySubdomain(subdomain string) (*models.Tenant, error)
}

// TenantMiddleware 租户解析中间件
// 租户永远来自Host头：请求到达哪个子域名就是哪个租户，
// 请求体和查询参数里的租户声明一律不信
type TenantMiddleware struct {
	directory TenantDirectory
}

func NewTenantMiddleware(directory TenantDirectory) *TenantMiddleware {
	return &TenantMiddleware{directory: directory}
}

// ExtractSubdomain 从Host头提取子域名
// 规则：
//   - acme.localhost      -> acme （本地开发）
//   - www.localhost       -> ""
//   - acme.example.com    -> acme
//   - www.example.com     -> ""
//   - example.com         -> ""
func ExtractSubdomain(host string) string {
	// 去掉端口
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	labels := strings.Split(host, ".")
	switch {
	case len(labels) == 2 && labels[1] == "localhost":
		if labels[0] == "www" {
			return ""
		}
		return labels[0]
	case len(labels) >= 3:
		if labels[0] == "www" {
			return ""
		}
		return labels[0]
	default:
		return ""
	}
}

// ResolveTenant 请求管线：提取Host → 目录解析 → 状态校验 → 写入上下文
// 两个中止点：未知租户404、非激活租户403；之后才轮到业务处理器
func (m *TenantMiddleware) ResolveTenant() gin.HandlerFunc {
	cfg := config.GetConfig()

	return func(c *gin.Context) {
		subdomain := ExtractSubdomain(c.Request.Host)
		if subdomain == "" {
			// 裸域名/www落到默认租户（营销站）
			subdomain = cfg.Tenant.DefaultSubdomain
		}

		tenant, err := m.directory.ResolveBySubdomain(subdomain)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 显式演示模式下，默认租户缺失时用演示数据集支撑营销站
				if cfg.Tenant.DemoMode && subdomain == cfg.Tenant.DefaultSubdomain {
					m.enterDemoMode(c)
					return
				}
				response.Error(c, http.StatusNotFound, kerrors.ErrTenantNotFound,
					fmt.Sprintf("租户不存在: %s", subdomain))
				c.Abort()
				return
			}
			// 目录查询的基础设施故障，与未知子域名严格区分
			logger.GetLogger().Errorf("租户目录查询失败 subdomain=%s: %v", subdomain, err)
			response.ServerError(c, "租户解析失败")
			c.Abort()
			return
		}

		// 状态校验：状态本身不敏感，403中披露给调用方
		if tenant.Status != models.TenantStatusActive {
			errCode := kerrors.ErrTenantInactive
			if tenant.Status == models.TenantStatusSuspended {
				errCode = kerrors.ErrTenantSuspended
			}
			response.Error(c, http.StatusForbidden, errCode,
				fmt.Sprintf("租户当前不可用，状态: %s", tenant.Status))
			c.Abort()
			return
		}

		c.Set(ContextTenantKey, tenant)
		c.Set(response.TenantInfoKey, response.TenantInfo{
			ID:        tenant.ID,
			Name:      tenant.Name,
			Subdomain: tenant.Subdomain,
		})
		c.Set(response.DataSourceKey, response.SourceLive)

		c.Next()
	}
}

// enterDemoMode 以演示租户继续请求，处理器返回演示数据
func (m *TenantMiddleware) enterDemoMode(c *gin.Context) {
	tenant := demo.Tenant()
	c.Set(ContextTenantKey, tenant)
	c.Set(ContextDemoKey, true)
	c.Set(response.TenantInfoKey, response.TenantInfo{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Subdomain: tenant.Subdomain,
	})
	c.Set(response.DataSourceKey, response.SourceDemo)
	c.Next()
}

// RequirePlan 套餐门槛：套餐全序上的一次比较，无副作用
// 在状态校验之后、业务执行之前生效
func (m *TenantMiddleware) RequirePlan(required models.PlanTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := GetTenant(c)
		if tenant == nil {
			response.ServerError(c, "租户上下文缺失")
			c.Abort()
			return
		}

		if !tenant.Plan.Allows(required) {
			response.Error(c, http.StatusForbidden, kerrors.ErrPlanRequired,
				fmt.Sprintf("当前套餐 %s 不支持该功能，需要 %s 及以上", tenant.Plan, required))
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenant 从上下文取出已解析的租户
func GetTenant(c *gin.Context) *models.Tenant {
	if v, exists := c.Get(ContextTenantKey); exists {
		if tenant, ok := v.(*models.Tenant); ok {
			return tenant
		}
	}
	return nil
}

// IsDemoMode 当前请求是否运行在演示数据集上
func IsDemoMode(c *gin.Context) bool {
	return c.GetBool(ContextDemoKey)
}
