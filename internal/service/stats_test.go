package service

import (
	"testing"

	"mockera_backend/internal/model"
)

func statsFixtureTest() *model.Test {
	return &model.Test{
		Questions: []model.Question{
			{UUIDBase: model.UUIDBase{ID: "q1"}, QuestionType: model.QuestionMCQ, CorrectOption: "A"},
			{UUIDBase: model.UUIDBase{ID: "q2"}, QuestionType: model.QuestionNUM, CorrectNumeric: "10"},
		},
	}
}

func TestComputeStats(t *testing.T) {
	test := statsFixtureTest()
	attempts := []model.Attempt{
		{
			Status:    model.AttemptSubmitted,
			Answers:   model.StringMap{"q1": "A", "q2": "10"},
			TimeSpent: model.IntMap{"q1": 30, "q2": 60},
		},
		{
			Status:    model.AttemptSubmitted,
			Answers:   model.StringMap{"q1": "B"},
			TimeSpent: model.IntMap{"q1": 50},
		},
		{
			// 草稿不计入统计
			Status:    model.AttemptDraft,
			Answers:   model.StringMap{"q1": "A"},
			TimeSpent: model.IntMap{"q1": 10},
		},
	}

	stats := ComputeStats(test, attempts)

	q1 := stats["q1"]
	if q1.Attempted != 2 || q1.Correct != 1 {
		t.Errorf("q1 attempted/correct = %d/%d, want 2/1", q1.Attempted, q1.Correct)
	}
	if q1.TotalTimeSeconds != 80 {
		t.Errorf("q1 total time = %d, want 80", q1.TotalTimeSeconds)
	}
	if got := q1.AccuracyRate(); got != 0.5 {
		t.Errorf("q1 accuracy = %v, want 0.5", got)
	}
	if got := q1.AverageTime(); got != 40 {
		t.Errorf("q1 average time = %v, want 40", got)
	}

	q2 := stats["q2"]
	if q2.Attempted != 1 || q2.Correct != 1 {
		t.Errorf("q2 attempted/correct = %d/%d, want 1/1", q2.Attempted, q2.Correct)
	}
}

func TestComputeStatsIgnoresZeroTime(t *testing.T) {
	test := statsFixtureTest()
	attempts := []model.Attempt{
		{
			Status:  model.AttemptSubmitted,
			Answers: model.StringMap{"q1": "A"},
			// 无计时数据
			TimeSpent: model.IntMap{},
		},
	}

	stats := ComputeStats(test, attempts)
	if stats["q1"].TotalTimeSeconds != 0 {
		t.Errorf("total time = %d, want 0", stats["q1"].TotalTimeSeconds)
	}
	if stats["q1"].Attempted != 1 {
		t.Errorf("attempted = %d, want 1", stats["q1"].Attempted)
	}
}

func TestComputeStatsEmptyHistory(t *testing.T) {
	test := statsFixtureTest()
	stats := ComputeStats(test, nil)

	for _, q := range test.Questions {
		stat := stats[q.ID]
		if stat == nil {
			t.Fatalf("missing stat for %s", q.ID)
		}
		if stat.Attempted != 0 || stat.AccuracyRate() != 0 || stat.AverageTime() != 0 {
			t.Errorf("expected zero stat for %s, got %+v", q.ID, stat)
		}
	}
}

func TestSubtractAttempt(t *testing.T) {
	test := statsFixtureTest()
	own := model.Attempt{
		Status:    model.AttemptSubmitted,
		Answers:   model.StringMap{"q1": "A", "q2": "9"},
		TimeSpent: model.IntMap{"q1": 20, "q2": 40},
	}
	other := model.Attempt{
		Status:    model.AttemptSubmitted,
		Answers:   model.StringMap{"q1": "B", "q2": "10"},
		TimeSpent: model.IntMap{"q1": 35, "q2": 55},
	}

	full := ComputeStats(test, []model.Attempt{own, other})
	excluded := full.SubtractAttempt(test, &own)

	// 扣除后应与只用他人答卷聚合完全一致
	want := ComputeStats(test, []model.Attempt{other})
	for _, q := range test.Questions {
		got, expected := excluded[q.ID], want[q.ID]
		if got.Attempted != expected.Attempted || got.Correct != expected.Correct || got.TotalTimeSeconds != expected.TotalTimeSeconds {
			t.Errorf("%s: got %+v, want %+v", q.ID, got, expected)
		}
	}

	// 原聚合不被修改
	if full["q1"].Attempted != 2 {
		t.Errorf("source stats mutated: %+v", full["q1"])
	}
}

func TestSubtractAttemptUnanswered(t *testing.T) {
	test := statsFixtureTest()
	own := model.Attempt{
		Status:    model.AttemptSubmitted,
		Answers:   model.StringMap{},
		TimeSpent: model.IntMap{},
	}

	full := ComputeStats(test, []model.Attempt{own})
	excluded := full.SubtractAttempt(test, &own)

	if excluded["q1"].Attempted != 0 || excluded["q2"].Attempted != 0 {
		t.Errorf("unanswered attempt should subtract nothing: %+v, %+v", excluded["q1"], excluded["q2"])
	}
}
