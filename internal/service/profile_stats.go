package service

import (
	"math"
	"time"

	"mockera_backend/internal/model"
)

// SubjectStat 单科目的作答量与正确率
type SubjectStat struct {
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// ProfileStats 个人页的聚合统计，只计已提交的答卷
type ProfileStats struct {
	TestsCreated     int                           `json:"testsCreated"`
	AttemptsCount    int                           `json:"attemptsCount"`
	TotalTimeSeconds int                           `json:"totalTimeSeconds"`
	AvgAccuracy      float64                       `json:"avgAccuracy"`
	AvgScore         float64                       `json:"avgScore"`
	BestScore        int                           `json:"bestScore"`
	FastestSeconds   int                           `json:"fastestSeconds"`
	LastAttemptAt    *time.Time                    `json:"lastAttemptAt,omitempty"`
	StrongestSubject model.Subject                 `json:"strongestSubject,omitempty"`
	SubjectStats     map[model.Subject]SubjectStat `json:"subjectStats"`
}

// ComputeProfileStats 由答卷历史聚合个人统计。纯函数。
// 科目统计逐题比对作答与标准答案，只统计实际作答过的题；
// 最强科目取正确率最高者，无作答记录时为空。
func ComputeProfileStats(attempts []model.Attempt, testsByID map[string]*model.Test) ProfileStats {
	stats := ProfileStats{
		SubjectStats: make(map[model.Subject]SubjectStat),
	}

	var totalAccuracy, totalScore float64
	for i := range attempts {
		a := &attempts[i]
		if a.Status != model.AttemptSubmitted {
			continue
		}

		stats.AttemptsCount++
		stats.TotalTimeSeconds += a.TimeTaken
		totalAccuracy += a.Accuracy
		totalScore += float64(a.Score)
		if a.Score > stats.BestScore {
			stats.BestScore = a.Score
		}
		if a.TimeTaken > 0 && (stats.FastestSeconds == 0 || a.TimeTaken < stats.FastestSeconds) {
			stats.FastestSeconds = a.TimeTaken
		}
		if stats.LastAttemptAt == nil || a.CreatedAt.After(*stats.LastAttemptAt) {
			t := a.CreatedAt
			stats.LastAttemptAt = &t
		}

		test, ok := testsByID[a.TestID]
		if !ok {
			continue
		}
		for j := range test.Questions {
			q := &test.Questions[j]
			submitted, answered := a.Answers[q.ID]
			if !answered || submitted == "" {
				continue
			}
			ss := stats.SubjectStats[q.Subject]
			ss.Attempted++
			if IsCorrect(q, submitted) {
				ss.Correct++
			}
			stats.SubjectStats[q.Subject] = ss
		}
	}

	if stats.AttemptsCount > 0 {
		stats.AvgAccuracy = totalAccuracy / float64(stats.AttemptsCount)
		stats.AvgScore = totalScore / float64(stats.AttemptsCount)
	}

	best := -1.0
	for subject, ss := range stats.SubjectStats {
		if ss.Attempted == 0 {
			continue
		}
		accuracy := float64(ss.Correct) / float64(ss.Attempted)
		ss.Accuracy = math.Round(accuracy*10000) / 10000
		stats.SubjectStats[subject] = ss
		if accuracy > best {
			best = accuracy
			stats.StrongestSubject = subject
		}
	}

	return stats
}
