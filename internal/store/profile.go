package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Profile is the single-user profile. Exactly one row exists (id = 1) and
// every save replaces it wholesale; there are no partial-field updates.
type Profile struct {
	BirthDate     string // YYYY-MM-DD, empty when age was supplied directly
	Age           int
	Sex           string
	HeightFeet    int
	HeightInches  int
	Weight        float64
	ActivityLevel string
	BMR           float64
	TDEE          float64
	CalorieTarget float64
	UpdatedAt     int64
}

// GetProfile returns the stored profile, or nil when none has been saved.
func (db *DB) GetProfile() (*Profile, error) {
	var p Profile
	var birthDate sql.NullString

	err := db.QueryRow(`
		SELECT birth_date, age, sex, height_feet, height_inches, weight,
		       activity_level, bmr, tdee, calorie_target, updated_at
		FROM user_profile WHERE id = 1
	`).Scan(&birthDate, &p.Age, &p.Sex, &p.HeightFeet, &p.HeightInches,
		&p.Weight, &p.ActivityLevel, &p.BMR, &p.TDEE, &p.CalorieTarget, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.BirthDate = birthDate.String
	return &p, nil
}

// SaveProfile replaces the singleton profile row. Last write wins.
func (db *DB) SaveProfile(p *Profile) error {
	p.UpdatedAt = time.Now().UnixMilli()

	var birthDate any
	if p.BirthDate != "" {
		birthDate = p.BirthDate
	}

	_, err := db.Exec(`
		INSERT OR REPLACE INTO user_profile
		(id, birth_date, age, sex, height_feet, height_inches, weight,
		 activity_level, bmr, tdee, calorie_target, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, birthDate, p.Age, p.Sex, p.HeightFeet, p.HeightInches, p.Weight,
		p.ActivityLevel, p.BMR, p.TDEE, p.CalorieTarget, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
