package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity 可编辑、软删除的实体基类
// swagger:model
type Entity struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Entity) BeforeCreate(tx *gorm.DB) error {
	e.ID = ensureID(e.ID)
	return nil
}

// Record 只追加、不修改的记录基类（无软删除）
type Record struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id" bson:"_id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt" bson:"createdAt"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	r.ID = ensureID(r.ID)
	return nil
}

func ensureID(id string) string {
	if id == "" {
		return GenerateUUID()
	}
	return id
}

func GenerateUUID() string {
	return uuid.New().String()
}
