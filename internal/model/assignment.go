package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── 序列化字符串集合自定义类型 ──

// StringList 以 JSON 文本落库的字符串集合，实现 GORM Scanner/Valuer 接口。
// submit_types 存储为 ["text","image"] 形式的 TEXT 列。
type StringList []string

// Scan 将数据库中的 JSON 文本解析为 []string。
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// Value 将 []string 序列化为 JSON 文本。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Contains 判断集合是否包含指定元素
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Assignment 课题表 — 对应 assignments
// (week, week_order) 构成讲座内的全序
type Assignment struct {
	ID              uint       `gorm:"primaryKey"                 json:"id"`
	LectureID       uint       `gorm:"not null;index"             json:"lecture_id"`
	Week            int        `gorm:"not null"                   json:"week"`
	WeekOrder       int        `gorm:"not null"                   json:"week_order"`
	Topic           string     `gorm:"type:varchar(200);not null" json:"topic"`
	VideoTitle      *string    `gorm:"type:varchar(200)"          json:"video_title"`
	PracticeContent *string    `gorm:"type:text"                  json:"practice_content"`
	MainContent     *string    `gorm:"type:text"                  json:"main_content"`
	SubmitTypes     StringList `gorm:"type:text;not null"         json:"submit_types"`
	OpenDate        *time.Time `json:"open_date"`
	DueDate         *time.Time `json:"due_date"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
