package model

import (
	"time"
)

// ShortURL 短链接映射模型，ID 即对外暴露的 7 位短码
type ShortURL struct {
	ID        string     `gorm:"primarykey;size:7" json:"id"`
	URL       string     `gorm:"type:text;not null" json:"url"`
	Visitors  int64      `gorm:"default:0" json:"visitors"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// TableName 指定表名
func (ShortURL) TableName() string {
	return "short_urls"
}
