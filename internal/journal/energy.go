package journal

import (
	"strings"
	"time"
)

const (
	lbsToKg  = 0.453592
	inToCm   = 2.54
	cutKcals = 500 // fixed daily deficit below TDEE
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extremely_active":  1.9,
}

// BMR computes basal metabolic rate via Mifflin-St Jeor. The sex comparison
// is case-insensitive; any value other than "male" uses the female offset.
func BMR(age int, sex string, heightInches, weightLbs float64) float64 {
	kg := weightLbs * lbsToKg
	cm := heightInches * inToCm

	bmr := 10*kg + 6.25*cm - 5*float64(age)
	if strings.EqualFold(sex, "male") {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales BMR by the activity multiplier. Unrecognized or missing levels
// fall back to sedentary.
func TDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = 1.2
	}
	return bmr * mult
}

// CalorieTarget is TDEE less the fixed weight-loss deficit.
func CalorieTarget(tdee float64) float64 {
	return tdee - cutKcals
}

// AgeAt derives age in whole years from a birth date, decrementing when the
// birthday has not yet occurred in the current year.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
