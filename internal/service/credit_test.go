package service

import (
	"testing"

	"mockera_backend/internal/model"
)

func creditFixture() (*model.Test, TestStats) {
	test := &model.Test{
		MarkingCorrect:   4,
		MarkingIncorrect: -1,
		Questions: []model.Question{
			{UUIDBase: model.UUIDBase{ID: "q1"}, QuestionType: model.QuestionMCQ, CorrectOption: "A", Difficulty: model.DifficultyTough},
			{UUIDBase: model.UUIDBase{ID: "q2"}, QuestionType: model.QuestionNUM, CorrectNumeric: "10", Difficulty: model.DifficultyEasy},
		},
	}
	stats := TestStats{
		"q1": {Attempted: 10, Correct: 5, TotalTimeSeconds: 200}, // avg 20s, accuracy 0.5
		"q2": {Attempted: 20, Correct: 1, TotalTimeSeconds: 600}, // accuracy 0.05
	}
	return test, stats
}

func TestBaseCreditsFullScenario(t *testing.T) {
	test, stats := creditFixture()
	answers := model.StringMap{"q1": "A", "q2": ""}
	timeSpent := model.IntMap{"q1": 5}

	// 难题答对 20 + 速度加分 50（5s ≤ 0.7×20s）+ 明智跳过 10
	got := BaseCredits(test, stats, answers, timeSpent, 1.0, SpeedBonusGated)
	if got != 80 {
		t.Errorf("BaseCredits = %d, want 80", got)
	}
}

func TestBaseCreditsAccuracyGate(t *testing.T) {
	test, stats := creditFixture()
	answers := model.StringMap{"q1": "A", "q2": ""}
	timeSpent := model.IntMap{"q1": 5}

	testCases := []struct {
		name            string
		overallAccuracy float64
		policy          SpeedBonusPolicy
		expected        int
	}{
		{"gated below threshold loses speed bonus", 0.5, SpeedBonusGated, 30},
		{"gated exactly at threshold loses speed bonus", 0.9, SpeedBonusGated, 30},
		{"gated above threshold keeps speed bonus", 0.95, SpeedBonusGated, 80},
		{"ungated ignores accuracy", 0.5, SpeedBonusUngated, 80},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BaseCredits(test, stats, answers, timeSpent, tc.overallAccuracy, tc.policy)
			if got != tc.expected {
				t.Errorf("BaseCredits = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestBaseCreditsSpeedBonusEdges(t *testing.T) {
	test, stats := creditFixture()

	testCases := []struct {
		name      string
		timeSpent model.IntMap
		expected  int
	}{
		// 难题答对恒有 20，明智跳过恒有 10
		{"exactly at threshold gets bonus", model.IntMap{"q1": 14}, 80},
		{"just above threshold no bonus", model.IntMap{"q1": 15}, 30},
		{"zero time no bonus", model.IntMap{}, 30},
	}

	answers := model.StringMap{"q1": "A"}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BaseCredits(test, stats, answers, tc.timeSpent, 1.0, SpeedBonusGated)
			if got != tc.expected {
				t.Errorf("BaseCredits = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestBaseCreditsNoHistoryNoSpeedBonus(t *testing.T) {
	test, _ := creditFixture()
	empty := TestStats{"q1": {}, "q2": {}}
	answers := model.StringMap{"q1": "A"}
	timeSpent := model.IntMap{"q1": 1}

	// 无历史均值时只有难题加分
	got := BaseCredits(test, empty, answers, timeSpent, 1.0, SpeedBonusGated)
	if got != 20 {
		t.Errorf("BaseCredits = %d, want 20", got)
	}
}

func TestBaseCreditsSkipBonusEdges(t *testing.T) {
	test, _ := creditFixture()
	answers := model.StringMap{}
	timeSpent := model.IntMap{}

	testCases := []struct {
		name     string
		q2Stat   QuestionStat
		expected int
	}{
		{"low accuracy rewarded", QuestionStat{Attempted: 20, Correct: 1}, 10},
		{"zero accuracy likely broken question", QuestionStat{Attempted: 20, Correct: 0}, 0},
		{"exactly at ceiling not rewarded", QuestionStat{Attempted: 20, Correct: 2}, 0},
		{"unattempted question not rewarded", QuestionStat{}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stat := tc.q2Stat
			stats := TestStats{"q1": {}, "q2": &stat}
			got := BaseCredits(test, stats, answers, timeSpent, 0, SpeedBonusGated)
			if got != tc.expected {
				t.Errorf("BaseCredits = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestApplyMultiplier(t *testing.T) {
	testCases := []struct {
		base       int
		multiplier float64
		expected   int
	}{
		{35, 1.5, 53}, // 52.5 四舍五入远离零
		{80, 1.0, 80},
		{80, 2.0, 160},
		{25, 1.2, 30},
		{0, 2.0, 0},
	}

	for _, tc := range testCases {
		if got := ApplyMultiplier(tc.base, tc.multiplier); got != tc.expected {
			t.Errorf("ApplyMultiplier(%d, %v) = %d, want %d", tc.base, tc.multiplier, got, tc.expected)
		}
	}
}
