package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDueDateUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"null", `null`, nil},
		{"empty string", `""`, nil},
		{"date only", `"2024-01-02"`, timePtr(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))},
		{"rfc3339", `"2024-01-01T00:00:00Z"`, timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"rfc3339 with offset", `"2024-01-01T09:00:00+09:00"`, timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"no zone", `"2024-01-01T15:04:05"`, timePtr(time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC))},
	}
	for _, tc := range cases {
		var d DueDate
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		got := d.Ptr()
		if tc.want == nil {
			if got != nil {
				t.Fatalf("%s: expected nil, got %v", tc.name, got)
			}
			continue
		}
		if got == nil || !got.Equal(*tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestDueDateUnmarshalRejectsGarbage(t *testing.T) {
	for _, in := range []string{`"tomorrow"`, `"01/02/2024"`, `123`, `true`} {
		var d DueDate
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestTodoRequestMissingFieldsDefault(t *testing.T) {
	var req TodoRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Title != "" || req.Description != "" || req.IsCompleted || req.DueDate.Ptr() != nil {
		t.Fatalf("expected zero values for missing fields, got %+v", req)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
