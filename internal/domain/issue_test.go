package domain

import (
	"encoding/json"
	"testing"
)

func TestIssueUnmarshalLegacyID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"underscore id", `{"_id":"abc","title":"Pothole"}`, "abc"},
		{"legacy id", `{"id":"xyz","title":"Pothole"}`, "xyz"},
		{"underscore wins", `{"_id":"abc","id":"xyz"}`, "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var issue Issue
			if err := json.Unmarshal([]byte(tc.raw), &issue); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if issue.ID != tc.want {
				t.Fatalf("ID = %q, want %q", issue.ID, tc.want)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Fatalf("known category %q reported invalid", c)
		}
	}
	if Category("Potholes").Valid() {
		t.Fatal("unknown category reported valid")
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusOngoing.Valid() || !StatusEnded.Valid() {
		t.Fatal("known status reported invalid")
	}
	if Status("paused").Valid() {
		t.Fatal("unknown status reported valid")
	}
}
