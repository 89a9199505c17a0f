package model

// CheckIn 一次自评提交。创建后不再修改；分数不落库，读取时由答案重新计算。
// swagger:model CheckIn
type CheckIn struct {
	Record
	UserID  string   `gorm:"index:idx_checkin_user_created,priority:1;type:varchar(64);not null" json:"userId"`
	Answers []string `gorm:"serializer:json;type:json" json:"answers"`
	Insight string   `gorm:"type:text" json:"insight"`
}

func (CheckIn) TableName() string {
	return "checkins"
}
