package util

const (
	MimeImage = "image/"
)

// 奖励规则
const (
	CheckInReward = 5
	JournalReward = 10
)

// Redis 键前缀
const (
	JournalLockPrefix = "wellness:lock:journal:"
	PostViewPrefix    = "wellness:view:post:"
)
