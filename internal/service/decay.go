package service

import (
	"mockera_backend/internal/model"
	"time"
)

const (
	// 每日最低衰减
	decayFloorPerDay = 10
	// 每日按余额比例衰减
	decayRate = 0.01
)

// DecayResult 一次惰性衰减评估的结果
type DecayResult struct {
	NewBalance     int
	NewLastDecayAt time.Time
	// Changed 为 true 时需要把 NewBalance/NewLastDecayAt 持久化
	Changed bool
	// 本次实际扣除的积分
	Decayed int
}

// ApplyDecay 计算用户积分到 now 为止应有的衰减。纯函数，不落库。
// 衰减按自然日幂等：同一天内的多次评估结果相同。
// 护盾生效期间余额不变，但 lastDecayAt 仍推进到今天，避免护盾到期后
// 积压的衰减一次性补扣。余额永不为负。
func ApplyDecay(now time.Time, user *model.User) DecayResult {
	unchanged := DecayResult{NewBalance: user.PerformanceCredits}

	anchor := user.LastDecayAt
	if anchor == nil {
		anchor = user.LastAttemptAt
	}
	if anchor == nil {
		return unchanged
	}

	todayStart := dayStart(now)
	anchorStart := dayStart(*anchor)

	shieldActive := user.RankShieldUntil != nil && user.RankShieldUntil.After(now)
	if shieldActive {
		if anchorStart.Before(todayStart) {
			return DecayResult{
				NewBalance:     user.PerformanceCredits,
				NewLastDecayAt: todayStart,
				Changed:        true,
			}
		}
		return unchanged
	}

	days := daysBetween(*anchor, now)
	if days <= 0 {
		return unchanged
	}

	balance := user.PerformanceCredits
	decayPerDay := int(float64(balance) * decayRate)
	if decayPerDay < decayFloorPerDay {
		decayPerDay = decayFloorPerDay
	}
	totalDecay := decayPerDay * days
	if totalDecay > balance {
		totalDecay = balance
	}
	newBalance := balance - totalDecay
	if newBalance < 0 {
		newBalance = 0
	}

	return DecayResult{
		NewBalance:     newBalance,
		NewLastDecayAt: todayStart,
		Changed:        true,
		Decayed:        totalDecay,
	}
}
