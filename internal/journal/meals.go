package journal

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// timedObservation is a single timestamped note line. Produced and consumed
// entirely within one extraction pass; never persisted.
type timedObservation struct {
	time       string
	content    string // lowercased
	breaksFast bool
}

// Timed lines look like "**7:45 AM** - black coffee". The bold 12-hour time
// plus dash separator is the only marker the classifier recognizes.
var timedLineRe = regexp.MustCompile(`(?i)\*\*(\d{1,2}:\d{2}\s*[AP]M)\*\*\s*-\s*([^\n]+)`)

var inlineCalRe = regexp.MustCompile(`~?(\d+)\s*cal`)

// fastingSafe lists items assumed not to break a fast regardless of order or
// quantity.
var fastingSafe = []string{
	"black coffee", "coffee", "water", "tea", "sparkling water", "electrolytes",
}

// ClassifyMeals scans the notes for timed lines and returns the first and
// last fast-breaking meal times of the day. Both are empty when no timed line
// breaks the fast.
func ClassifyMeals(text string) (first, last string) {
	var meals []timedObservation
	for _, m := range timedLineRe.FindAllStringSubmatch(text, -1) {
		obs := timedObservation{
			time:    strings.TrimSpace(m[1]),
			content: strings.ToLower(m[2]),
		}
		obs.breaksFast = breaksFast(obs.content)
		if !obs.breaksFast {
			continue
		}
		if _, ok := MinutesSinceMidnight(obs.time); !ok {
			continue
		}
		meals = append(meals, obs)
	}
	if len(meals) == 0 {
		return "", ""
	}

	sort.SliceStable(meals, func(i, j int) bool {
		mi, _ := MinutesSinceMidnight(meals[i].time)
		mj, _ := MinutesSinceMidnight(meals[j].time)
		return mi < mj
	})
	return meals[0].time, meals[len(meals)-1].time
}

// breaksFast judges whether a timed line ends a fasting period: an inline
// calorie count over 20 always breaks it; otherwise anything not on the
// fasting-safe list breaks it unless the line itself claims ~5 cal or 0 cal.
func breaksFast(content string) bool {
	calories := 0
	if m := inlineCalRe.FindStringSubmatch(content); m != nil {
		calories, _ = strconv.Atoi(m[1])
	}
	if calories > 20 {
		return true
	}
	for _, item := range fastingSafe {
		if strings.Contains(content, item) {
			return false
		}
	}
	if strings.Contains(content, "~5 cal") || strings.Contains(content, "0 cal") {
		return false
	}
	return true
}

var clockRe = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*([AP]M)$`)

// MinutesSinceMidnight converts a 12-hour clock string ("H:MM AM|PM") to
// minutes since midnight. 12 AM maps to 0 and 12 PM stays noon.
func MinutesSinceMidnight(clock string) (int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours < 1 || hours > 12 || minutes > 59 {
		return 0, false
	}

	period := strings.ToUpper(m[3])
	if period == "PM" && hours != 12 {
		hours += 12
	} else if period == "AM" && hours == 12 {
		hours = 0
	}
	return hours*60 + minutes, true
}

// FormatClock renders minutes since midnight as a 12-hour clock string.
func FormatClock(minutes int) string {
	hours := minutes / 60 % 24
	mins := minutes % 60

	period := "AM"
	switch {
	case hours == 0:
		hours = 12
	case hours == 12:
		period = "PM"
	case hours > 12:
		hours -= 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hours, mins, period)
}
