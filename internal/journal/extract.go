package journal

import (
	"regexp"
	"strconv"
	"strings"
)

// fieldPatterns is an ordered list of alternative phrasings for one field.
// Patterns are tried in priority order and the first match wins; later, more
// general patterns exist only as fallbacks for text the specific ones miss.
type fieldPatterns []*regexp.Regexp

func (fp fieldPatterns) firstMatch(text string) (string, bool) {
	for _, re := range fp {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

var (
	caloriesConsumedPatterns = fieldPatterns{
		regexp.MustCompile(`(?i)total calories:\s*~?([\d,]+)`),
		regexp.MustCompile(`(?i)total calories consumed:\s*~?([\d,]+)`),
		regexp.MustCompile(`(?i)net calories:\s*~?([\d,]+)`),
		// Line-anchored so "Exercise calories:" never reads as intake.
		regexp.MustCompile(`(?mi)^[ \t*-]*calories:\s*~?([\d,]+)`),
	}

	caloriesBurnedPatterns = fieldPatterns{
		regexp.MustCompile(`(?i)calories burned:\s*~?([\d,]+)`),
		regexp.MustCompile(`(?i)\bburned:\s*~?([\d,]+)\s*cal`),
		regexp.MustCompile(`(?i)exercise calories:\s*~?([\d,]+)`),
		regexp.MustCompile(`(?i)workout[^\n]*?burned[^\n]*?~?([\d,]+)`),
		regexp.MustCompile(`(?i)~([\d,]+)\s*cal\w*\s+burned`),
	}

	exerciseMinutesPatterns = fieldPatterns{
		regexp.MustCompile(`(?i)exercise:\s*~?([\d,]+)\+?\s*min`),
		regexp.MustCompile(`(?i)total[^\n]*?exercise[^\n]*?([\d,]+)\s*min`),
		regexp.MustCompile(`(?i)([\d,]+)\+?\s*min\w*\s+total`),
		regexp.MustCompile(`(?i)exercise[^\n]*?([\d,]+)\s*minutes\s+total`),
	}

	weightPatterns = fieldPatterns{
		regexp.MustCompile(`(?i)weigh(?:ed)?\s+in\s+at\s+~?([\d.]+)`),
		regexp.MustCompile(`(?i)weigh(?:ed)?\s+~?([\d.]+)`),
		regexp.MustCompile(`(?i)weight:?\s*~?([\d.]+)`),
		// Bare-unit fallback last to avoid false positives on unrelated numbers.
		regexp.MustCompile(`(?i)~?([\d.]+)\s*lbs?\b`),
	}

	fastingHoursPatterns = fieldPatterns{
		regexp.MustCompile(`(?i)fasting window:[^\n]*?([\d.]+)\s*hours?`),
	}
)

// Extract pulls a HealthData snapshot out of free-form note text. It is a
// total function: fields with no pattern match keep their defaults.
func Extract(text string) HealthData {
	var hd HealthData

	if v, ok := caloriesConsumedPatterns.firstMatch(text); ok {
		hd.CaloriesConsumed = parseIntLoose(v)
	}
	if v, ok := caloriesBurnedPatterns.firstMatch(text); ok {
		hd.CaloriesBurned = parseIntLoose(v)
	}
	if v, ok := exerciseMinutesPatterns.firstMatch(text); ok {
		hd.ExerciseMinutes = parseIntLoose(v)
	}
	if v, ok := weightPatterns.firstMatch(text); ok {
		if w, err := strconv.ParseFloat(cleanNumber(v), 64); err == nil {
			hd.Weight = &w
		}
	}
	if v, ok := fastingHoursPatterns.firstMatch(text); ok {
		hd.FastingHours = parseFloatLoose(v)
	}

	hd.FirstMealTime, hd.LastMealTime = ClassifyMeals(text)
	return hd
}

// cleanNumber strips thousands separators and approximation markers. A
// trailing "+" or leading "~" is an intensity hint, not a parse error.
func cleanNumber(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Trim(s, "~+")
	return strings.TrimRight(s, ".")
}

func parseIntLoose(s string) int {
	n, err := strconv.Atoi(cleanNumber(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloatLoose(s string) float64 {
	f, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil {
		return 0
	}
	return f
}
