package model

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage AI 支持对话中的一轮消息
// swagger:model ChatMessage
type ChatMessage struct {
	Record  `bson:",inline"`
	UserID  string `gorm:"index;type:varchar(64);not null" json:"userId" bson:"userId"`
	Role    string `gorm:"size:20;not null" json:"role" bson:"role"`
	Content string `gorm:"type:text" json:"content" bson:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
