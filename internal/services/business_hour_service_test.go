package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHourEntries(t *testing.T) {
	valid := []HourEntry{
		{Weekday: 1, OpenTime: "10:00", CloseTime: "23:00"},
		{Weekday: 2, OpenTime: "10:00", CloseTime: "23:00"},
		{Weekday: 0, Closed: true},
	}
	assert.NoError(t, validateHourEntries(valid))

	cases := []struct {
		name    string
		entries []HourEntry
	}{
		{"空条目", nil},
		{"星期几越界", []HourEntry{{Weekday: 7, OpenTime: "10:00", CloseTime: "23:00"}}},
		{"星期几为负", []HourEntry{{Weekday: -1, OpenTime: "10:00", CloseTime: "23:00"}}},
		{"星期几重复", []HourEntry{
			{Weekday: 1, OpenTime: "10:00", CloseTime: "23:00"},
			{Weekday: 1, OpenTime: "12:00", CloseTime: "22:00"},
		}},
		{"开门时间格式错", []HourEntry{{Weekday: 1, OpenTime: "10点", CloseTime: "23:00"}}},
		{"关门时间格式错", []HourEntry{{Weekday: 1, OpenTime: "10:00", CloseTime: "25:00"}}},
		{"关门早于开门", []HourEntry{{Weekday: 1, OpenTime: "23:00", CloseTime: "10:00"}}},
		{"开关门相同", []HourEntry{{Weekday: 1, OpenTime: "10:00", CloseTime: "10:00"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, validateHourEntries(tc.entries))
		})
	}
}

func TestValidateHourEntriesClosedSkipsTimes(t *testing.T) {
	// 休息日不校验时间字段
	entries := []HourEntry{{Weekday: 3, Closed: true, OpenTime: "乱填", CloseTime: ""}}
	assert.NoError(t, validateHourEntries(entries))
}
