package model

import "time"

// JournalEntry 日记，每个用户每个日历日最多一条，由 (user_id, entry_date) 唯一索引保证。
// swagger:model JournalEntry
type JournalEntry struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UserID     string    `gorm:"uniqueIndex:idx_journal_user_day;type:varchar(64);not null" json:"userId"`
	EntryDate  string    `gorm:"uniqueIndex:idx_journal_user_day;size:10;not null" json:"entryDate"` // YYYY-MM-DD，服务器配置时区
	Title      string    `gorm:"size:200" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Mood       string    `gorm:"size:30" json:"mood"`
	Reflection string    `gorm:"type:text" json:"reflection,omitempty"`

	ContentHTML string `gorm:"-" json:"contentHtml,omitempty"` // 详情接口渲染的 Markdown
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
