package journal

import "testing"

func TestFastingWindow(t *testing.T) {
	tests := []struct {
		first, last string
		want        float64
	}{
		{"8:00 AM", "9:00 PM", 11.0},  // crossed midnight
		{"1:00 PM", "10:00 AM", 3.0},  // same day
		{"12:00 PM", "8:00 PM", 16.0}, // noon after an 8 PM dinner
		{"9:15 AM", "7:45 PM", 13.5},
		{"8:10 AM", "9:00 PM", 11.2},
		{"8:00 AM", "8:00 AM", 0},
		{"bogus", "9:00 PM", 0},
		{"8:00 AM", "bogus", 0},
	}
	for _, tt := range tests {
		if got := FastingWindow(tt.first, tt.last); got != tt.want {
			t.Errorf("FastingWindow(%q, %q) = %v, want %v", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestResolveFastingExplicitWins(t *testing.T) {
	today := HealthData{FastingHours: 16.5, FirstMealTime: "8:00 AM"}
	called := false
	lookup := func() *HealthData {
		called = true
		return &HealthData{LastMealTime: "9:00 PM"}
	}
	if got := ResolveFasting(today, lookup); got != 16.5 {
		t.Errorf("ResolveFasting = %v, want 16.5", got)
	}
	if called {
		t.Error("previous-day lookup ran despite an explicit fasting value")
	}
}

func TestResolveFastingSmartWindow(t *testing.T) {
	today := HealthData{FirstMealTime: "8:00 AM"}
	lookup := func() *HealthData {
		return &HealthData{LastMealTime: "9:00 PM"}
	}
	if got := ResolveFasting(today, lookup); got != 11.0 {
		t.Errorf("ResolveFasting = %v, want 11.0", got)
	}
}

func TestResolveFastingMissingData(t *testing.T) {
	prevWithoutMeal := func() *HealthData { return &HealthData{} }
	prevNil := func() *HealthData { return nil }

	tests := []struct {
		name   string
		today  HealthData
		lookup PrevDayLookup
	}{
		{"no first meal today", HealthData{}, prevWithoutMeal},
		{"nil lookup", HealthData{FirstMealTime: "8:00 AM"}, nil},
		{"no previous record", HealthData{FirstMealTime: "8:00 AM"}, prevNil},
		{"previous day has no last meal", HealthData{FirstMealTime: "8:00 AM"}, prevWithoutMeal},
	}
	for _, tt := range tests {
		if got := ResolveFasting(tt.today, tt.lookup); got != 0 {
			t.Errorf("%s: ResolveFasting = %v, want 0", tt.name, got)
		}
	}
}
