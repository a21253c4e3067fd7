package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateTime 宽松时间类型
// 既有客户端同时发送 RFC3339 与 "2006-01-02T15:04:05"（无时区）两种格式，
// 无时区时按服务器本地时区解释
type DateTime struct {
	time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON 解析多种时间格式
func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("无法解析时间 %q", s)
}

// MarshalJSON 输出 RFC3339
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// TimePtr 转换为 *time.Time，零值返回 nil
func (d *DateTime) TimePtr() *time.Time {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
