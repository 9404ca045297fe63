package service

import (
	"testing"

	"mockera_backend/internal/model"
)

func TestBuildTestDefaults(t *testing.T) {
	req := CreateTestRequest{
		Title:     "JEE Mock 1",
		Questions: []TestQuestionRequest{{Subject: model.SubjectPhysics}},
	}

	test := buildTest("teacher-1", req)

	if test.Visibility != model.VisibilityPublic {
		t.Errorf("Visibility = %s, want Public", test.Visibility)
	}
	if test.AccessCode != nil {
		t.Errorf("AccessCode = %v, want nil", *test.AccessCode)
	}
	if test.DurationMinutes != 180 || test.MarkingCorrect != 4 || test.MarkingIncorrect != -1 {
		t.Errorf("marking defaults not applied: %+v", test)
	}
	if test.Questions[0].QuestionType != model.QuestionMCQ {
		t.Errorf("QuestionType = %s, want MCQ", test.Questions[0].QuestionType)
	}
}

func TestBuildTestAccessCode(t *testing.T) {
	tests := []struct {
		name       string
		visibility model.TestVisibility
		accessCode string
		wantStored bool
	}{
		{"private test keeps access code", model.VisibilityPrivate, "SECRET1", true},
		{"private test without code", model.VisibilityPrivate, "", false},
		{"public test drops access code", model.VisibilityPublic, "SECRET1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateTestRequest{
				Title:      "JEE Mock 1",
				Visibility: tt.visibility,
				AccessCode: tt.accessCode,
				Questions:  []TestQuestionRequest{{Subject: model.SubjectMaths}},
			}
			test := buildTest("teacher-1", req)

			if tt.wantStored {
				if test.AccessCode == nil || *test.AccessCode != tt.accessCode {
					t.Errorf("AccessCode = %v, want %q", test.AccessCode, tt.accessCode)
				}
			} else if test.AccessCode != nil {
				t.Errorf("AccessCode = %q, want nil", *test.AccessCode)
			}
		})
	}
}
