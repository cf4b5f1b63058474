package util

import (
	"testing"
	"time"

	"little_learners_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAgeAroundBirthday(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 8, CalculateAge(time.Date(2018, time.June, 15, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 7, CalculateAge(time.Date(2018, time.June, 16, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 8, CalculateAge(time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 7, CalculateAge(time.Date(2018, time.December, 31, 0, 0, 0, 0, time.UTC), now))
}

func TestAgeGroupBands(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	birthday := func(age int) time.Time { return now.AddDate(-age, 0, -1) }

	cases := []struct {
		age  int
		want model.AgeGroup
	}{
		{5, model.Group5To6},
		{6, model.Group5To6},
		{7, model.Group7To9},
		{8, model.Group7To9},
		{9, model.Group7To9},
		{10, model.Group10To12},
		{12, model.Group10To12},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AgeGroupFor(birthday(tc.age), now), "age %d", tc.age)
	}
}

func TestValidStudentAgeBoundaries(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	birthday := func(age int) time.Time { return now.AddDate(-age, 0, -1) }

	assert.False(t, ValidStudentAge(birthday(4), now))
	assert.True(t, ValidStudentAge(birthday(5), now))
	assert.True(t, ValidStudentAge(birthday(12), now))
	assert.False(t, ValidStudentAge(birthday(13), now))
}
