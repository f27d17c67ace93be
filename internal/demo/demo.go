package demo

import (
	"time"

	"kbox/internal/models"

	"gorm.io/datatypes"
)

// 演示数据集：营销站在没有真实租户时展示的内容
// 只在显式开启演示模式、且Host解析不到租户时使用；
// 真实后端的查询失败永远不会落到这里

// Tenant 演示租户（ID为0，任何RLS表都查不出行）
func Tenant() *models.Tenant {
	return &models.Tenant{
		Name:      "KBox 演示店",
		Subdomain: "demo",
		Plan:      models.PlanPro,
		Status:    models.TenantStatusActive,
		Settings:  datatypes.JSON([]byte(`{"theme":"neon","locale":"zh-CN"}`)),
	}
}

// Rooms 演示包厢列表
func Rooms() []*models.Room {
	return []*models.Room{
		{Name: "小包 K1", Capacity: 4, HourlyRate: 8800, Status: models.RoomStatusActive, SortOrder: 1},
		{Name: "中包 K2", Capacity: 8, HourlyRate: 12800, Status: models.RoomStatusActive, SortOrder: 2},
		{Name: "豪华包 VIP", Capacity: 15, HourlyRate: 28800, Status: models.RoomStatusActive, SortOrder: 3},
	}
}

// BusinessHours 演示营业时间（周一至周日 10:00-23:00，周五周六到凌晨）
func BusinessHours() []*models.BusinessHour {
	hours := make([]*models.BusinessHour, 0, 7)
	for weekday := 0; weekday < 7; weekday++ {
		closeTime := "23:00"
		if weekday == 5 || weekday == 6 {
			closeTime = "23:59"
		}
		hours = append(hours, &models.BusinessHour{
			Weekday:   weekday,
			OpenTime:  "10:00",
			CloseTime: closeTime,
		})
	}
	return hours
}

// Bookings 演示预订列表
func Bookings() []*models.Booking {
	base := time.Now().Truncate(time.Hour)
	return []*models.Booking{
		{
			Reference:    "demo-0001",
			RoomID:       1,
			CustomerName: "演示客户",
			StartTime:    base.Add(2 * time.Hour),
			EndTime:      base.Add(4 * time.Hour),
			Price:        17600,
			Status:       models.BookingStatusConfirmed,
		},
	}
}
