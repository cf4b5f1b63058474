package util

import (
	"time"

	"little_learners_backend/internal/model"
)

const (
	MinStudentAge = 5
	MaxStudentAge = 12
)

// CalculateAge returns whole years between birthday and now.
func CalculateAge(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

// AgeGroupFor maps a birthday to one of the three fixed bands.
func AgeGroupFor(birthday, now time.Time) model.AgeGroup {
	age := CalculateAge(birthday, now)
	switch {
	case age <= 6:
		return model.Group5To6
	case age <= 9:
		return model.Group7To9
	default:
		return model.Group10To12
	}
}

// ValidStudentAge reports whether the birthday falls in the supported
// 5-12 range. Checked before any remote write.
func ValidStudentAge(birthday, now time.Time) bool {
	age := CalculateAge(birthday, now)
	return age >= MinStudentAge && age <= MaxStudentAge
}
