package service

import "mockera_backend/internal/model"

// QuestionStat 单题在全体已提交答卷上的聚合
type QuestionStat struct {
	Attempted        int
	Correct          int
	TotalTimeSeconds int
}

// AccuracyRate 作答正确率，无人作答时为 0
func (s *QuestionStat) AccuracyRate() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// AverageTime 平均耗时（秒），无人作答时为 0
func (s *QuestionStat) AverageTime() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.TotalTimeSeconds) / float64(s.Attempted)
}

// TestStats questionId -> 聚合统计
type TestStats map[string]*QuestionStat

// ComputeStats 对一份卷子的历史已提交答卷做逐题聚合。
// 积分计算必须使用当前答卷入库之前的统计结果（自排除），
// 调用方负责保证传入的列表不含正在评分的答卷。
// 耗时为 0 视为未计时而非瞬答，不计入平均。
func ComputeStats(test *model.Test, attempts []model.Attempt) TestStats {
	stats := make(TestStats, len(test.Questions))
	for i := range test.Questions {
		stats[test.Questions[i].ID] = &QuestionStat{}
	}

	for i := range attempts {
		attempt := &attempts[i]
		if attempt.Status != model.AttemptSubmitted {
			continue
		}
		for j := range test.Questions {
			q := &test.Questions[j]
			selected := attempt.Answers[q.ID]
			if selected == "" {
				continue
			}
			stat := stats[q.ID]
			if stat == nil {
				continue
			}
			stat.Attempted++
			if IsCorrect(q, selected) {
				stat.Correct++
			}
			if seconds := attempt.TimeSpent[q.ID]; seconds > 0 {
				stat.TotalTimeSeconds += seconds
			}
		}
	}
	return stats
}

// SubtractAttempt 从聚合中扣除单份答卷自身的贡献，
// 供回填任务在全量聚合后对每份答卷恢复自排除语义。
func (ts TestStats) SubtractAttempt(test *model.Test, attempt *model.Attempt) TestStats {
	out := make(TestStats, len(ts))
	for i := range test.Questions {
		q := &test.Questions[i]
		src := ts[q.ID]
		if src == nil {
			continue
		}
		stat := &QuestionStat{
			Attempted:        src.Attempted,
			Correct:          src.Correct,
			TotalTimeSeconds: src.TotalTimeSeconds,
		}
		selected := attempt.Answers[q.ID]
		if selected != "" {
			stat.Attempted--
			if IsCorrect(q, selected) {
				stat.Correct--
			}
			if seconds := attempt.TimeSpent[q.ID]; seconds > 0 {
				stat.TotalTimeSeconds -= seconds
			}
		}
		out[q.ID] = stat
	}
	return out
}
