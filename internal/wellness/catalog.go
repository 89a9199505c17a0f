// Package wellness 自评问卷的计分、分级以及趋势/热力图推导。
// 分数永远从原始答案重新计算，不做持久化缓存。
package wellness

// Question 问卷题目，Options 的下标具有序数含义：
// 默认 0 表示最好，ReversePolarity 为 true 时 0 表示最差。
type Question struct {
	Order           int      `json:"order"`
	Prompt          string   `json:"prompt"`
	Options         []string `json:"options"`
	ReversePolarity bool     `json:"reversePolarity"`
}

// MaxSeverity 单题最高严重度
const MaxSeverity = 3

var catalog = []Question{
	{Order: 0, Prompt: "How would you describe your overall mood over the past few days?", Options: []string{"Very good", "Good", "Low", "Very low"}},
	{Order: 1, Prompt: "How well have you been sleeping?", Options: []string{"Very well", "Fairly well", "Poorly", "Very poorly"}},
	{Order: 2, Prompt: "How often have you felt calm and on top of stress?", Options: []string{"Never", "Rarely", "Sometimes", "Often"}, ReversePolarity: true},
	{Order: 3, Prompt: "How would you rate your energy level?", Options: []string{"High", "Moderate", "Low", "Exhausted"}},
	{Order: 4, Prompt: "How connected do you feel to the people around you?", Options: []string{"Very connected", "Somewhat connected", "A little isolated", "Very isolated"}},
	{Order: 5, Prompt: "How often have you felt anxious or worried?", Options: []string{"Never", "Rarely", "Sometimes", "Often"}},
	{Order: 6, Prompt: "Has your appetite changed recently?", Options: []string{"Not at all", "Slightly", "Noticeably", "Severely"}},
	{Order: 7, Prompt: "How easily can you concentrate on everyday tasks?", Options: []string{"Very easily", "Fairly easily", "With difficulty", "Hardly at all"}},
	{Order: 8, Prompt: "How hopeful do you feel about the coming weeks?", Options: []string{"Very hopeful", "Somewhat hopeful", "Not very hopeful", "Not hopeful at all"}},
	{Order: 9, Prompt: "How often have you enjoyed things you usually like doing?", Options: []string{"Always", "Often", "Rarely", "Never"}},
}

// Questions 返回问卷题目的副本，调用方修改不会影响内置题库
func Questions() []Question {
	out := make([]Question, len(catalog))
	for i, q := range catalog {
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		q.Options = opts
		out[i] = q
	}
	return out
}

// QuestionCount 题目数量
func QuestionCount() int {
	return len(catalog)
}
