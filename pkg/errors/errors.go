package errors

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// ========== 机器可读错误标识 ==========
// 放在响应体的 error 字段，前端据此分支处理

const (
	ErrInvalidParam    = "INVALID_PARAM"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrForbidden       = "FORBIDDEN"
	ErrNotFound        = "NOT_FOUND"
	ErrServer          = "SERVER_ERROR"
	ErrTenantNotFound  = "TENANT_NOT_FOUND"
	ErrTenantInactive  = "TENANT_INACTIVE"
	ErrTenantSuspended = "TENANT_SUSPENDED"
	ErrPlanRequired    = "PLAN_REQUIRED"
	ErrContextBind     = "TENANT_CONTEXT_BIND_FAILED"
	ErrDemoReadOnly    = "DEMO_READ_ONLY"
)
