package model

// BreathingExercise 呼吸练习节奏（秒）
type BreathingExercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Inhale      int    `json:"inhale"`
	HoldIn      int    `json:"holdIn"`
	Exhale      int    `json:"exhale"`
	HoldOut     int    `json:"holdOut"`
}

// CycleSeconds 一个完整呼吸循环的时长
func (e BreathingExercise) CycleSeconds() int {
	return e.Inhale + e.HoldIn + e.Exhale + e.HoldOut
}

// BreathingSession 一次完成的呼吸练习
type BreathingSession struct {
	Record
	UserID          string `gorm:"index;type:varchar(64);not null" json:"userId"`
	ExerciseID      string `gorm:"size:50;not null" json:"exerciseId"`
	Cycles          int    `gorm:"not null" json:"cycles"`
	DurationSeconds int    `gorm:"not null" json:"durationSeconds"`
}

func (BreathingSession) TableName() string {
	return "breathing_sessions"
}
