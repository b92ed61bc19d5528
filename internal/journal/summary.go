package journal

import (
	"math"
	"time"
)

// PeriodSummary aggregates merged per-day health data over a date range.
// Deficit fields are zero unless a calorie target is configured.
type PeriodSummary struct {
	AvgCaloriesConsumed  int      `json:"avgCaloriesConsumed"`
	AvgCaloriesBurned    int      `json:"avgCaloriesBurned"`
	TotalExerciseMinutes int      `json:"totalExerciseMinutes"`
	AvgFastingHours      float64  `json:"avgFastingHours"`
	WeightChange         *float64 `json:"weightChange"`
	CurrentWeight        *float64 `json:"currentWeight"`
	DaysTracked          int      `json:"daysTracked"`
	CalorieTarget        *float64 `json:"calorieTarget"`
	TotalDeficit         int      `json:"totalDeficit"`
	AvgDailyDeficit      int      `json:"avgDailyDeficit"`
	TotalNetDeficit      int      `json:"totalNetDeficit"`
	AvgDailyNetDeficit   int      `json:"avgDailyNetDeficit"`
}

// Progress reports the weight trend across every recorded weigh-in.
type Progress struct {
	StartWeight   float64 `json:"startWeight"`
	CurrentWeight float64 `json:"currentWeight"`
	TotalChange   float64 `json:"totalChange"`
	StartDate     string  `json:"startDate"`
	CurrentDate   string  `json:"currentDate"`
	DaysBetween   int     `json:"daysBetween"`
	TotalWeighIns int     `json:"totalWeighIns"`
}

// mergeDay merges a fresh re-extraction over the persisted snapshot. Fresh
// values win except when falsy, in which case the persisted value is kept.
// fastingHours prefers the smart cross-day value, then the fresh explicit
// value, then the persisted one.
func mergeDay(persisted, fresh HealthData, smartFasting float64) HealthData {
	merged := fresh
	if merged.CaloriesConsumed == 0 {
		merged.CaloriesConsumed = persisted.CaloriesConsumed
	}
	if merged.CaloriesBurned == 0 {
		merged.CaloriesBurned = persisted.CaloriesBurned
	}
	if merged.ExerciseMinutes == 0 {
		merged.ExerciseMinutes = persisted.ExerciseMinutes
	}
	if merged.Weight == nil {
		merged.Weight = persisted.Weight
	}
	if merged.FirstMealTime == "" {
		merged.FirstMealTime = persisted.FirstMealTime
	}
	if merged.LastMealTime == "" {
		merged.LastMealTime = persisted.LastMealTime
	}

	switch {
	case smartFasting > 0:
		merged.FastingHours = smartFasting
	case fresh.FastingHours > 0:
		// keep fresh explicit value
	default:
		merged.FastingHours = persisted.FastingHours
	}
	return merged
}

// Summarize re-derives each day's facts from its notes, merges them with the
// persisted snapshot, and rolls the range up into a PeriodSummary. Smart
// fasting for a day bridges to the previous record in the list, which may not
// be the previous calendar date when days are missing from the range.
func Summarize(days []DayRecord, target *float64) PeriodSummary {
	var out PeriodSummary
	if target != nil {
		t := math.Round(*target)
		out.CalorieTarget = &t
	}
	if len(days) == 0 {
		return out
	}

	merged := make([]HealthData, len(days))
	for i, day := range days {
		fresh := Extract(day.Notes)

		var prev PrevDayLookup
		if i > 0 {
			prevNotes := days[i-1].Notes
			prev = func() *HealthData {
				p := Extract(prevNotes)
				return &p
			}
		}
		smart := ResolveFasting(fresh, prev)
		merged[i] = mergeDay(day.Snapshot, fresh, smart)
	}

	var totalConsumed, totalBurned int
	var fastingSum float64
	fastingDays := 0
	var weights []float64

	for _, d := range merged {
		totalConsumed += d.CaloriesConsumed
		totalBurned += d.CaloriesBurned
		out.TotalExerciseMinutes += d.ExerciseMinutes
		if d.FastingHours > 0 {
			fastingSum += d.FastingHours
			fastingDays++
		}
		if d.Weight != nil {
			weights = append(weights, *d.Weight)
		}
	}

	n := float64(len(merged))
	out.DaysTracked = len(merged)
	out.AvgCaloriesConsumed = int(math.Round(float64(totalConsumed) / n))
	out.AvgCaloriesBurned = int(math.Round(float64(totalBurned) / n))
	if fastingDays > 0 {
		out.AvgFastingHours = math.Round(fastingSum/float64(fastingDays)*10) / 10
	}
	if len(weights) > 0 {
		w := weights[len(weights)-1]
		out.CurrentWeight = &w
	}
	if len(weights) > 1 {
		change := math.Round((weights[len(weights)-1]-weights[0])*10) / 10
		out.WeightChange = &change
	}

	if target != nil {
		targetTotal := *target * n
		deficit := targetTotal - float64(totalConsumed)
		netDeficit := targetTotal - float64(totalConsumed-totalBurned)
		out.TotalDeficit = int(math.Round(deficit))
		out.AvgDailyDeficit = int(math.Round(deficit / n))
		out.TotalNetDeficit = int(math.Round(netDeficit))
		out.AvgDailyNetDeficit = int(math.Round(netDeficit / n))
	}
	return out
}

// OverallProgress scans all records for days with a weight. A fresh
// extraction overrides the snapshot only when it actually yields a weight.
// Returns nil and the weigh-in count when fewer than two days qualify.
func OverallProgress(days []DayRecord) (*Progress, int) {
	type weighIn struct {
		date   string
		weight float64
	}
	var ins []weighIn

	for _, day := range days {
		w := Extract(day.Notes).Weight
		if w == nil {
			w = day.Snapshot.Weight
		}
		if w != nil {
			ins = append(ins, weighIn{date: day.Date, weight: *w})
		}
	}
	if len(ins) < 2 {
		return nil, len(ins)
	}

	first := ins[0]
	last := ins[len(ins)-1]
	p := &Progress{
		StartWeight:   first.weight,
		CurrentWeight: last.weight,
		TotalChange:   math.Round((first.weight-last.weight)*10) / 10,
		StartDate:     first.date,
		CurrentDate:   last.date,
		TotalWeighIns: len(ins),
	}
	if start, err := time.Parse("2006-01-02", first.date); err == nil {
		if current, err := time.Parse("2006-01-02", last.date); err == nil {
			p.DaysBetween = int(current.Sub(start).Hours() / 24)
		}
	}
	return p, len(ins)
}
