package response

import (
	"net/http"

	"kbox/pkg/errors"
	"kbox/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// 上下文键：租户中间件写入、响应层读取
const (
	TenantInfoKey = "tenant_info"
	DataSourceKey = "data_source"
)

// 数据来源标识（区分真实后端与演示数据）
const (
	SourceLive = "live"
	SourceDemo = "demo"
)

// TenantInfo 响应中携带的租户摘要
type TenantInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// Response 统一成功返回格式
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Tenant  *TenantInfo `json:"tenant,omitempty"`
	Source  string      `json:"source,omitempty"`
}

// ErrorResponse 统一错误返回格式
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PageResponse 分页成功返回格式
type PageResponse struct {
	Success  bool                 `json:"success"`
	Data     interface{}          `json:"data"`
	Tenant   *TenantInfo          `json:"tenant,omitempty"`
	Source   string               `json:"source,omitempty"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

// tenantFromContext 读取租户中间件写入的租户摘要
func tenantFromContext(c *gin.Context) *TenantInfo {
	if v, exists := c.Get(TenantInfoKey); exists {
		if info, ok := v.(TenantInfo); ok {
			return &info
		}
	}
	return nil
}

// sourceFromContext 读取数据来源标识，默认live
func sourceFromContext(c *gin.Context) string {
	if v, exists := c.Get(DataSourceKey); exists {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return SourceLive
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Tenant:  tenantFromContext(c),
		Source:  sourceFromContext(c),
	})
}

// SuccessWithPage 分页成功返回
func SuccessWithPage(c *gin.Context, data interface{}, pageInfo *pagination.PageInfo) {
	c.JSON(http.StatusOK, PageResponse{
		Success:  true,
		Data:     data,
		Tenant:   tenantFromContext(c),
		Source:   sourceFromContext(c),
		PageInfo: pageInfo,
	})
}

// Error 通用错误返回
func Error(c *gin.Context, status int, errCode, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   errCode,
		Message: message,
	})
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, errors.ErrInvalidParam, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, errors.ErrUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, errors.ErrForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, errors.ErrNotFound, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, errors.ErrServer, message)
}
