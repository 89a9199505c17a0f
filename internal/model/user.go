package model

import (
	"time"
)

type UserRole string

const (
	Member UserRole = "member"
	Admin  UserRole = "admin"
)

// User 由身份提供方的 subject 作为主键，首次访问时自动创建。
// Coins/Streak/LastCheckIn 是奖励账本字段，只通过事务内的副作用修改。
// swagger:model User
type User struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Name        string     `gorm:"size:100" json:"name"`
	Email       string     `gorm:"size:100;index" json:"email"`
	Role        UserRole   `gorm:"size:20;default:'member'" json:"role"`
	Avatar      string     `gorm:"size:255" json:"avatar"`
	Coins       int        `gorm:"default:0;not null" json:"coins"`
	Streak      int        `gorm:"default:0;not null" json:"streak"`
	LastCheckIn *time.Time `json:"lastCheckIn,omitempty"`
	LastSeen    time.Time  `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
