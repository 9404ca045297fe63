package service

import (
	"math"
	"mockera_backend/internal/model"
)

// SpeedBonusPolicy 控制速度加分是否要求整卷高正确率。
// 线上提交路径历史上带整卷正确率门槛，离线回填脚本没有，
// 两条规则都保留为显式变体，不做静默统一。
type SpeedBonusPolicy int

const (
	// SpeedBonusGated 速度加分要求整卷正确率 > 0.9（线上提交路径）
	SpeedBonusGated SpeedBonusPolicy = iota
	// SpeedBonusUngated 速度加分不看整卷正确率（历史回填口径）
	SpeedBonusUngated
)

const (
	// 答对高难度题
	toughBonus = 20
	// 显著快于同伴平均耗时且答对
	speedBonus = 50
	// 识别出近乎无人做对的题并主动跳过
	smartSkipBonus = 10

	speedTimeFactor       = 0.7
	skipAccuracyCeiling   = 0.1
	accuracyGateThreshold = 0.9
)

// BaseCredits 计算一份答卷的基础积分（连续天数倍率之前）。
// stats 必须是不含该答卷自身贡献的统计（自排除）。
// 所有加分项均为整数，结果无需舍入。
func BaseCredits(test *model.Test, stats TestStats, answers model.StringMap, timeSpent model.IntMap, overallAccuracy float64, policy SpeedBonusPolicy) int {
	credits := 0
	for i := range test.Questions {
		q := &test.Questions[i]
		selected := answers[q.ID]
		stat := stats[q.ID]
		if stat == nil {
			stat = &QuestionStat{}
		}

		correctNow := IsCorrect(q, selected)

		if correctNow && q.Difficulty == model.DifficultyTough {
			credits += toughBonus
		}

		if correctNow {
			avgTime := stat.AverageTime()
			seconds := timeSpent[q.ID]
			gatePassed := policy == SpeedBonusUngated || overallAccuracy > accuracyGateThreshold
			// 无历史均值时没有比较基准，不给速度加分
			if gatePassed && avgTime > 0 && seconds > 0 && float64(seconds) <= avgTime*speedTimeFactor {
				credits += speedBonus
			}
		}

		if selected == "" {
			rate := stat.AccuracyRate()
			// 正确率恰为 0 的题大概率是坏题，不奖励跳过
			if rate > 0 && rate < skipAccuracyCeiling {
				credits += smartSkipBonus
			}
		}
	}
	return credits
}

// ApplyMultiplier 对基础积分应用连续天数倍率，四舍五入（远离零）取整
func ApplyMultiplier(baseCredits int, multiplier float64) int {
	return int(math.Round(float64(baseCredits) * multiplier))
}
