package model

import "testing"

func TestVisibleTo(t *testing.T) {
	tests := []struct {
		name       string
		visibility TestVisibility
		createdBy  string
		viewer     string
		want       bool
	}{
		{"public test visible to anyone", VisibilityPublic, "owner", "stranger", true},
		{"public test visible to owner", VisibilityPublic, "owner", "owner", true},
		{"private test hidden from others", VisibilityPrivate, "owner", "stranger", false},
		{"private test visible to owner", VisibilityPrivate, "owner", "owner", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test := &Test{Visibility: tt.visibility, CreatedBy: tt.createdBy}
			if got := test.VisibleTo(tt.viewer); got != tt.want {
				t.Errorf("VisibleTo(%q) = %v, want %v", tt.viewer, got, tt.want)
			}
		})
	}
}
