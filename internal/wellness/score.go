package wellness

// Label 状态分级
type Label string

const (
	Excellent  Label = "Excellent"
	Good       Label = "Good"
	Fair       Label = "Fair"
	Concerning Label = "Concerning"
)

// Status 分级结果及固定的指导语（非临床建议）
type Status struct {
	Label    Label  `json:"label"`
	Guidance string `json:"guidance"`
}

// Result 单次自评的聚合结果
type Result struct {
	AverageSeverity float64 `json:"averageSeverity"`
	WellnessScore   float64 `json:"wellnessScore"`
}

// 分级阈值（含上界），按顺序匹配
var bands = []struct {
	upper  float64
	status Status
}{
	{0.75, Status{Excellent, "You seem to be doing well. Keep up the healthy habits that are working for you."}},
	{1.50, Status{Good, "Things look mostly steady. Keep making room for rest and small acts of self-care."}},
	{2.25, Status{Fair, "It sounds like things have been heavy lately. Consider reaching out to someone you trust."}},
}

var concerning = Status{Concerning, "You have been going through a lot. We strongly encourage talking to a mental health professional."}

// Severity 将答案映射为 [0,3] 的严重度。
// 答案不在选项中时按位置 0 处理，不报错。
func Severity(q Question, answer string) int {
	pos := 0
	for i, opt := range q.Options {
		if opt == answer {
			pos = i
			break
		}
	}
	if pos > MaxSeverity {
		pos = MaxSeverity
	}
	if q.ReversePolarity {
		return MaxSeverity - pos
	}
	return pos
}

// Aggregate 按位置对齐答案与题目求平均严重度。
// 超出较短序列的位置不参与计算；空序列的平均值为 0。
func Aggregate(answers []string, questions []Question) Result {
	n := len(answers)
	if len(questions) < n {
		n = len(questions)
	}
	if n == 0 {
		return Result{AverageSeverity: 0, WellnessScore: MaxSeverity}
	}

	sum := 0
	for i := 0; i < n; i++ {
		sum += Severity(questions[i], answers[i])
	}
	avg := float64(sum) / float64(n)
	return Result{AverageSeverity: avg, WellnessScore: MaxSeverity - avg}
}

// Score 使用内置题库计算
func Score(answers []string) Result {
	return Aggregate(answers, catalog)
}

// Classify 根据平均严重度返回分级
func Classify(avg float64) Status {
	for _, b := range bands {
		if avg <= b.upper {
			return b.status
		}
	}
	return concerning
}
