package journal

import "math"

// PrevDayLookup fetches the previous day's health data. Returning nil means
// no data; lookup failures are reported the same way, never as errors.
type PrevDayLookup func() *HealthData

// ResolveFasting computes the day's fasting duration in hours. An explicit
// declaration in today's notes wins unchanged. Otherwise the window bridges
// today's first fast-breaking meal back to the previous day's last one,
// wrapping past midnight. Missing data at any step degrades silently to 0.
func ResolveFasting(today HealthData, prev PrevDayLookup) float64 {
	if today.FastingHours > 0 {
		return today.FastingHours
	}
	if today.FirstMealTime == "" || prev == nil {
		return 0
	}

	prevDay := prev()
	if prevDay == nil || prevDay.LastMealTime == "" {
		return 0
	}
	return FastingWindow(today.FirstMealTime, prevDay.LastMealTime)
}

// FastingWindow returns the hours elapsed from lastMeal (previous day) to
// firstMeal (today), rounded to the nearest 0.1. A first meal earlier on the
// clock than the last meal means the window crossed midnight.
func FastingWindow(firstMeal, lastMeal string) float64 {
	first, ok := MinutesSinceMidnight(firstMeal)
	if !ok {
		return 0
	}
	last, ok := MinutesSinceMidnight(lastMeal)
	if !ok {
		return 0
	}

	elapsed := first - last
	if first < last {
		elapsed = (24*60 - last) + first
	}
	return math.Round(float64(elapsed)/60*10) / 10
}
