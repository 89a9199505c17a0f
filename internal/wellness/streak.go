package wellness

import "time"

// NextStreak 根据上次打卡时间计算新的连续天数：
// 首次为 1；同一天不变；相隔一天加 1；相隔更久重置为 1。
func NextStreak(current int, last *time.Time, now time.Time, loc *time.Location) int {
	if last == nil || last.IsZero() || current <= 0 {
		return 1
	}

	gap := DaysBetween(*last, now, loc)
	switch {
	case gap <= 0:
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

// DaysBetween 返回两个时间在 loc 时区下相差的日历天数
func DaysBetween(from, to time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	f := from.In(loc)
	t := to.In(loc)
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}
