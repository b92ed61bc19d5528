package journal

// HealthData is the derived snapshot extracted from one day's notes. Every
// field has a defined default; a note that matches nothing produces the zero
// value, never an error.
type HealthData struct {
	CaloriesConsumed int      `json:"caloriesConsumed"`
	CaloriesBurned   int      `json:"caloriesBurned"`
	ExerciseMinutes  int      `json:"exerciseMinutes"`
	Weight           *float64 `json:"weight"`
	FastingHours     float64  `json:"fastingHours"`
	FirstMealTime    string   `json:"firstMealTime,omitempty"`
	LastMealTime     string   `json:"lastMealTime,omitempty"`
}

// DayRecord pairs one day's raw notes with the snapshot persisted when the
// entry was last saved. The snapshot may be stale relative to a fresh
// re-extraction of the notes.
type DayRecord struct {
	Date     string
	Notes    string
	Snapshot HealthData
}
