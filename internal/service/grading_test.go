package service

import (
	"testing"

	"mockera_backend/internal/model"
)

func TestIsCorrectMCQ(t *testing.T) {
	q := &model.Question{QuestionType: model.QuestionMCQ, CorrectOption: "B"}

	testCases := []struct {
		name      string
		submitted string
		expected  bool
	}{
		{"exact match", "B", true},
		{"wrong option", "A", false},
		{"empty is unanswered", "", false},
		{"lowercase does not match", "b", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(q, tc.submitted); got != tc.expected {
				t.Errorf("IsCorrect(%q) = %v, want %v", tc.submitted, got, tc.expected)
			}
		})
	}
}

func TestIsCorrectMSQ(t *testing.T) {
	q := &model.Question{QuestionType: model.QuestionMSQ, CorrectOption: "A,C"}

	testCases := []struct {
		name      string
		submitted string
		expected  bool
	}{
		{"same order", "A,C", true},
		{"reversed order", "C,A", true},
		{"whitespace around tokens", " C , A ", true},
		{"trailing comma", "A,C,", true},
		{"subset", "A", false},
		{"superset", "A,B,C", false},
		{"different set", "B,D", false},
		{"empty is unanswered", "", false},
		{"only commas is unanswered", ",,", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(q, tc.submitted); got != tc.expected {
				t.Errorf("IsCorrect(%q) = %v, want %v", tc.submitted, got, tc.expected)
			}
		})
	}
}

func TestIsCorrectNUM(t *testing.T) {
	q := &model.Question{QuestionType: model.QuestionNUM, CorrectNumeric: "42"}

	testCases := []struct {
		name      string
		submitted string
		expected  bool
	}{
		{"exact match", "42", true},
		{"surrounding whitespace trimmed", "  42  ", true},
		{"no numeric equivalence", "42.0", false},
		{"wrong value", "41", false},
		{"empty is unanswered", "", false},
		{"whitespace only is unanswered", "   ", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(q, tc.submitted); got != tc.expected {
				t.Errorf("IsCorrect(%q) = %v, want %v", tc.submitted, got, tc.expected)
			}
		})
	}
}

func TestIsCorrectNUMKeyWithWhitespace(t *testing.T) {
	// 答案键本身带空白时同样参与去空白比较
	q := &model.Question{QuestionType: model.QuestionNUM, CorrectNumeric: " 3.14 "}
	if !IsCorrect(q, "3.14") {
		t.Error("expected submission to match whitespace-padded key")
	}
}

func TestParseAnswer(t *testing.T) {
	testCases := []struct {
		name         string
		questionType model.QuestionType
		raw          string
		expectedKind AnswerKind
		expectedVal  string
	}{
		{"empty always none", model.QuestionMCQ, "", AnswerNone, ""},
		{"mcq kept verbatim", model.QuestionMCQ, "C", AnswerSingle, "C"},
		{"msq canonicalized", model.QuestionMSQ, "c, a", AnswerMulti, "a,c"},
		{"msq empty tokens dropped", model.QuestionMSQ, ", ,", AnswerNone, ""},
		{"num trimmed", model.QuestionNUM, " 7 ", AnswerNumeric, "7"},
		{"num whitespace only", model.QuestionNUM, "  ", AnswerNone, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAnswer(tc.questionType, tc.raw)
			if got.Kind != tc.expectedKind {
				t.Errorf("kind = %v, want %v", got.Kind, tc.expectedKind)
			}
			if got.Value != tc.expectedVal {
				t.Errorf("value = %q, want %q", got.Value, tc.expectedVal)
			}
		})
	}
}
