package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 20},
		{"page=3&page_size=50", 3, 50},
		{"page=0&page_size=-1", 1, 20},
		{"page=abc&page_size=xyz", 1, 20},
		{"page_size=500", 1, 100},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/bookings?"+tc.query, nil)

			params := ParsePageParams(c)
			assert.Equal(t, tc.page, params.Page)
			assert.Equal(t, tc.pageSize, params.PageSize)
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 20, 45)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	info = NewPageInfo(1, 20, 0)
	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)

	info = NewPageInfo(3, 20, 45)
	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestPageParamsOffset(t *testing.T) {
	p := &PageParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.GetOffset())
	assert.Equal(t, 20, p.GetLimit())
}
