package service

import (
	"context"
	"testing"
	"time"

	"little_learners_backend/internal/model"
	"little_learners_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func birthdayForAge(years int) time.Time {
	return time.Now().AddDate(-years, 0, -1)
}

func TestCreateStudentDerivesAgeGroupAndDefaults(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		age  int
		want model.AgeGroup
	}{
		{5, model.Group5To6},
		{6, model.Group5To6},
		{7, model.Group7To9},
		{9, model.Group7To9},
		{10, model.Group10To12},
		{12, model.Group10To12},
	}

	for _, tc := range cases {
		student, err := env.students.CreateStudent(1, "Kid", "Tester", birthdayForAge(tc.age))
		require.NoError(t, err, "age %d", tc.age)
		assert.Equal(t, tc.want, student.AgeGroup, "age %d", tc.age)
		assert.Equal(t, 0, student.Points)
		for _, category := range model.Categories {
			assert.Equal(t, 0, student.CourseProgress[category])
		}
	}
}

func TestCreateStudentRejectsBadBirthdays(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.students.CreateStudent(1, "Kid", "Tester", time.Time{})
	assert.ErrorIs(t, err, util.ErrInvalidBirthday)

	_, err = env.students.CreateStudent(1, "Kid", "Tester", time.Now().AddDate(1, 0, 0))
	assert.ErrorIs(t, err, util.ErrInvalidBirthday)

	_, err = env.students.CreateStudent(1, "Kid", "Tester", birthdayForAge(3))
	assert.ErrorIs(t, err, util.ErrAgeOutOfRange)

	_, err = env.students.CreateStudent(1, "Kid", "Tester", birthdayForAge(13))
	assert.ErrorIs(t, err, util.ErrAgeOutOfRange)
}

func TestGetStudentScopedToParent(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)

	_, err := env.students.GetStudent(student.ID, 2)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	found, err := env.students.GetStudent(student.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, student.ID, found.ID)
}

func TestUpdateStudentRevalidatesBirthday(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)

	_, err := env.students.UpdateStudent(student.ID, 1, "", "", birthdayForAge(2))
	assert.ErrorIs(t, err, util.ErrAgeOutOfRange)

	updated, err := env.students.UpdateStudent(student.ID, 1, "Nora", "", birthdayForAge(11))
	require.NoError(t, err)
	assert.Equal(t, "Nora", updated.FirstName)
	assert.Equal(t, "Rivera", updated.LastName)
	assert.Equal(t, model.Group10To12, updated.AgeGroup)
}

func TestSelectedStudentFallsBackToFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.createStudent(t, 1)
	second, err := env.students.CreateStudent(1, "Evie", "Rivera", birthdayForAge(6))
	require.NoError(t, err)

	// Nothing remembered yet: first student wins and is remembered.
	selected, err := env.students.SelectedStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, selected.ID)

	require.NoError(t, env.students.SelectStudent(ctx, 1, second.ID))
	selected, err = env.students.SelectedStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, selected.ID)

	// A remembered profile that was deleted falls back again.
	require.NoError(t, env.students.DeleteStudent(ctx, second.ID, 1))
	selected, err = env.students.SelectedStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, selected.ID)
}

func TestSelectStudentRejectsForeignProfile(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)

	err := env.students.SelectStudent(context.Background(), 2, student.ID)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestSelectedStudentNoProfiles(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.students.SelectedStudent(context.Background(), 42)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}
