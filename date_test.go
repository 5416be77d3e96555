package snowball

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	today := Today()
	currentYear := today.Year()
	currentMonth := today.Month()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Standard ISO Format
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2025-07-01 ", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},

		// Import formats
		{"2025-07-01T15:04:05Z", NewDate(2025, time.July, 1), false},
		{"7/1/2025", NewDate(2025, time.July, 1), false},
		{"07/01/2025", NewDate(2025, time.July, 1), false},
		{"2025/7/1", NewDate(2025, time.July, 1), false},

		// Relative Duration Format
		{"0d", today, false},
		{"today", today, false},
		{"Yesterday", today.Add(-1), false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-0d", today, false},
		{"-2w", today.Add(-14), false},
		{"+1m", NewDate(currentYear, currentMonth+1, today.Day()), false},
		{"+1y", NewDate(currentYear+1, currentMonth, today.Day()), false},
		{"-1y", NewDate(currentYear-1, currentMonth, today.Day()), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	type record struct {
		On Date `json:"on"`
	}
	data, err := json.Marshal(record{On: NewDate(2024, time.February, 29)})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"on":"2024-02-29"}`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var r record
	if err := json.Unmarshal([]byte(`{"on":"2024-3-1"}`), &r); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if want := NewDate(2024, time.March, 1); r.On != want {
		t.Errorf("json.Unmarshal() = %v, want %v", r.On, want)
	}

	if err := json.Unmarshal([]byte(`{"on":""}`), &r); err != nil || !r.On.IsZero() {
		t.Errorf("json.Unmarshal(empty) = %v, %v, want zero date", r.On, err)
	}
	if err := json.Unmarshal([]byte(`{"on":"yesterday"}`), &r); err == nil {
		t.Errorf("json.Unmarshal(yesterday) error = nil, want an error")
	}
}

func TestDate_Compare(t *testing.T) {
	a, b := NewDate(2024, time.January, 31), NewDate(2024, time.February, 1)
	if !a.Before(b) || a.After(b) || a.Compare(b) != -1 {
		t.Errorf("%v should be before %v", a, b)
	}
	if got := a.Add(1); got != b {
		t.Errorf("Add(1) = %v, want %v", got, b)
	}
	if got := (Date{}).String(); got != "" {
		t.Errorf("zero date String() = %q, want empty", got)
	}
}
