package model

import (
	"time"
)

// Group 社区互助小组
type Group struct {
	Entity
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CreatorID   string `gorm:"index;type:varchar(64)" json:"creatorId"`
	MemberCount int    `gorm:"default:0" json:"memberCount"`
}

func (Group) TableName() string {
	return "community_groups"
}

type GroupMember struct {
	GroupID  string    `gorm:"primaryKey;type:varchar(36)" json:"groupId"`
	UserID   string    `gorm:"primaryKey;type:varchar(64);index" json:"userId"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (GroupMember) TableName() string {
	return "community_group_members"
}

type GroupPost struct {
	Entity
	GroupID  string `gorm:"index;type:varchar(36);not null" json:"groupId"`
	AuthorID string `gorm:"index;type:varchar(64);not null" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Views    int    `gorm:"default:0" json:"views"`
}

func (GroupPost) TableName() string {
	return "community_group_posts"
}
