package service

import "time"

// dayStart 返回所在自然日的本地零点
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween 两个时刻所在自然日零点之间的整天数差
func daysBetween(from, to time.Time) int {
	return int(dayStart(to).Sub(dayStart(from)).Hours() / 24)
}

// NextStreak 计算本次提交后的连续答题天数。
// 同日重复提交不递增（最低钳到 1），隔一天递增，
// 隔两天以上或时钟回拨一律重置为 1。
func NextStreak(now time.Time, lastAttemptAt *time.Time, priorStreakDays int) int {
	if lastAttemptAt == nil {
		return 1
	}
	diffDays := daysBetween(*lastAttemptAt, now)
	switch {
	case diffDays == 0:
		if priorStreakDays < 1 {
			return 1
		}
		return priorStreakDays
	case diffDays == 1:
		return priorStreakDays + 1
	default:
		return 1
	}
}

// StreakMultiplier 连续天数对应的积分倍率
func StreakMultiplier(streakDays int) float64 {
	switch {
	case streakDays >= 4:
		return 2.0
	case streakDays == 3:
		return 1.5
	case streakDays == 2:
		return 1.2
	default:
		return 1.0
	}
}
