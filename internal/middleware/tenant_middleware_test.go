package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kbox/internal/models"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestExtractSubdomain(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"acme.localhost", "acme"},
		{"acme.localhost:3000", "acme"},
		{"www.localhost", ""},
		{"acme.example.com", "acme"},
		{"acme.example.com:443", "acme"},
		{"www.example.com", ""},
		{"example.com", ""},
		{"localhost", ""},
		{"localhost:8080", ""},
		{"ACME.Example.com", "acme"},
		{"a.b.example.com", "a"},
	}

	for _, tc := range cases {
		t.Run(tc.host, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractSubdomain(tc.host))
		})
	}
}

// stubDirectory 测试用租户目录：按子域名返回固定租户并计数
type stubDirectory struct {
	tenants  map[string]*models.Tenant
	infraErr bool
	calls    int
}

func (s *stubDirectory) ResolveBySubdomain(subdomain string) (*models.Tenant, error) {
	s.calls++
	if s.infraErr {
		return nil, errors.New("connection refused")
	}
	if tenant, ok := s.tenants[subdomain]; ok {
		return tenant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newPipelineRouter(dir TenantDirectory, queryCount *int) *gin.Engine {
	mw := NewTenantMiddleware(dir)
	r := gin.New()
	r.GET("/api/rooms", mw.ResolveTenant(), func(c *gin.Context) {
		// 业务查询计数器：校验中止点是否真的挡在业务之前
		*queryCount++
		response.Success(c, []string{})
	})
	return r
}

func doRequest(r *gin.Engine, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.Host = host
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResolveTenantActive(t *testing.T) {
	dir := &stubDirectory{tenants: map[string]*models.Tenant{
		"acme": {BaseModel: models.BaseModel{ID: 7}, Name: "Acme KTV", Subdomain: "acme", Status: models.TenantStatusActive},
	}}
	queries := 0
	r := newPipelineRouter(dir, &queries)

	w := doRequest(r, "acme.example.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, queries)

	var body struct {
		Success bool                 `json:"success"`
		Tenant  *response.TenantInfo `json:"tenant"`
		Source  string               `json:"source"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Tenant)
	assert.Equal(t, uint(7), body.Tenant.ID)
	assert.Equal(t, "acme", body.Tenant.Subdomain)
	assert.Equal(t, response.SourceLive, body.Source)
}

func TestResolveTenantNotFound(t *testing.T) {
	dir := &stubDirectory{tenants: map[string]*models.Tenant{}}
	queries := 0
	r := newPipelineRouter(dir, &queries)

	w := doRequest(r, "unknown.example.com")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, queries)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "TENANT_NOT_FOUND", body.Error)
}

func TestResolveTenantSuspendedBlocksBeforeQuery(t *testing.T) {
	dir := &stubDirectory{tenants: map[string]*models.Tenant{
		"frozen": {BaseModel: models.BaseModel{ID: 9}, Name: "冻结店", Subdomain: "frozen", Status: models.TenantStatusSuspended},
	}}
	queries := 0
	r := newPipelineRouter(dir, &queries)

	w := doRequest(r, "frozen.example.com")

	assert.Equal(t, http.StatusForbidden, w.Code)
	// 业务查询一次都没执行
	assert.Equal(t, 0, queries)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "TENANT_SUSPENDED", body.Error)
	// 状态向调用方披露
	assert.Contains(t, body.Message, "suspended")
}

func TestResolveTenantInactive(t *testing.T) {
	dir := &stubDirectory{tenants: map[string]*models.Tenant{
		"sleepy": {BaseModel: models.BaseModel{ID: 3}, Subdomain: "sleepy", Status: models.TenantStatusInactive},
	}}
	queries := 0
	r := newPipelineRouter(dir, &queries)

	w := doRequest(r, "sleepy.example.com")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, queries)
}

func TestResolveTenantInfraFailure(t *testing.T) {
	// 基础设施故障是500，不能和未知子域名的404混为一谈
	dir := &stubDirectory{infraErr: true}
	queries := 0
	r := newPipelineRouter(dir, &queries)

	w := doRequest(r, "acme.example.com")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, queries)
}

func TestResolveTenantIdempotent(t *testing.T) {
	dir := &stubDirectory{tenants: map[string]*models.Tenant{
		"acme": {BaseModel: models.BaseModel{ID: 7}, Subdomain: "acme", Status: models.TenantStatusActive},
	}}
	queries := 0
	r := newPipelineRouter(dir, &queries)

	first := doRequest(r, "acme.example.com")
	second := doRequest(r, "acme.example.com")

	var a, b struct {
		Tenant *response.TenantInfo `json:"tenant"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a.Tenant.ID, b.Tenant.ID)
}

func TestRequirePlan(t *testing.T) {
	dir := &stubDirectory{tenants: map[string]*models.Tenant{
		"basic": {BaseModel: models.BaseModel{ID: 1}, Subdomain: "basic", Status: models.TenantStatusActive, Plan: models.PlanBasic},
		"pro":   {BaseModel: models.BaseModel{ID: 2}, Subdomain: "pro", Status: models.TenantStatusActive, Plan: models.PlanPro},
	}}
	mw := NewTenantMiddleware(dir)

	queries := 0
	r := gin.New()
	r.GET("/api/audit-logs", mw.ResolveTenant(), mw.RequirePlan(models.PlanPro), func(c *gin.Context) {
		queries++
		response.Success(c, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/audit-logs", nil)
	req.Host = "basic.example.com"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, queries)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PLAN_REQUIRED", body.Error)

	req = httptest.NewRequest(http.MethodGet, "/api/audit-logs", nil)
	req.Host = "pro.example.com"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, queries)
}
