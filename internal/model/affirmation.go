package model

import (
	"time"

	"gorm.io/gorm"
)

// Affirmation 每日肯定语，启用的条目按 12 小时轮换
type Affirmation struct {
	gorm.Model
	Content         string    `gorm:"type:text;not null" json:"content"`
	IsEnabled       bool      `gorm:"default:true" json:"is_enabled"`
	IsCurrentlyUsed bool      `gorm:"default:false" json:"is_currently_used"`
	LastUsedAt      time.Time `gorm:"autoCreateTime" json:"last_used_at"`
}

func (Affirmation) TableName() string {
	return "affirmations"
}
