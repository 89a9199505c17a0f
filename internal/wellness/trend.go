package wellness

import (
	"math"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultHeatmapDays 热力图默认窗口
const DefaultHeatmapDays = 90

// Entry 一条已保存的自评记录（只需要原始答案和时间）
type Entry struct {
	Answers   []string
	CreatedAt time.Time
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

type HeatmapDay struct {
	Date      string `json:"date"`
	Intensity int    `json:"intensity"`
	HasData   bool   `json:"hasData"`
}

// DateKey 将时间截断为 loc 时区下的日历日期
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}

func sortedByTime(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Trend 生成按日期升序的健康分序列；同一天有多条记录时取最后一条。
func Trend(entries []Entry, loc *time.Location) []TrendPoint {
	byDay := make(map[string]float64)
	var days []string
	for _, e := range sortedByTime(entries) {
		day := DateKey(e.CreatedAt, loc)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = Score(e.Answers).WellnessScore
	}

	sort.Strings(days)
	points := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		points = append(points, TrendPoint{Date: day, Score: byDay[day]})
	}
	return points
}

// Heatmap 生成以 today 结尾（含）的 windowDays 天日历，最早的日期在前。
// 与 Trend 使用同一套严重度规则（含反向计分）。
func Heatmap(entries []Entry, windowDays int, today time.Time, loc *time.Location) []HeatmapDay {
	if windowDays <= 0 {
		windowDays = DefaultHeatmapDays
	}
	if loc == nil {
		loc = time.Local
	}

	scores := make(map[string][]float64)
	for _, e := range entries {
		day := DateKey(e.CreatedAt, loc)
		scores[day] = append(scores[day], Score(e.Answers).WellnessScore)
	}

	t := today.In(loc)
	anchor := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)

	days := make([]HeatmapDay, windowDays)
	for i := 0; i < windowDays; i++ {
		date := anchor.AddDate(0, 0, i-(windowDays-1)).Format(dateLayout)
		day := HeatmapDay{Date: date}
		if list, ok := scores[date]; ok && len(list) > 0 {
			sum := 0.0
			for _, s := range list {
				sum += s
			}
			avg := sum / float64(len(list))
			day.Intensity = int(math.Round(avg / MaxSeverity * 100))
			day.HasData = true
		}
		days[i] = day
	}
	return days
}
