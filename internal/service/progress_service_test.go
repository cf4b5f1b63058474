package service

import (
	"testing"

	"little_learners_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) studentPoints(t *testing.T, studentID string) int {
	t.Helper()
	var student model.Student
	require.NoError(t, e.db.Where("id = ?", studentID).First(&student).Error)
	return student.Points
}

func (e *testEnv) categoryProgress(t *testing.T, studentID string, category model.Category) int {
	t.Helper()
	var student model.Student
	require.NoError(t, e.db.Where("id = ?", studentID).First(&student).Error)
	return student.CourseProgress[category]
}

func TestCompleteSectionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)
	_, lessons := env.createCourse(t, model.Cooking, 1, 50)
	lessonID := lessons[0].ID

	require.NoError(t, env.progress.CompleteSection(student.ID, lessonID, "s1", 4, 50))
	require.NoError(t, env.progress.CompleteSection(student.ID, lessonID, "s1", 4, 50))

	progress, err := env.progress.LoadProgress(student.ID, lessonID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Len(t, progress.CompletedSections, 1)
	assert.Nil(t, progress.CompletedAt)
	assert.Equal(t, 0, env.studentPoints(t, student.ID))
}

func TestCompleteSectionStampsAndAwardsOnFinalSection(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)
	_, lessons := env.createCourse(t, model.Cooking, 1, 50)
	lessonID := lessons[0].ID

	sections := []string{"s1", "s2", "s3", "s4"}
	for i, sectionID := range sections {
		require.NoError(t, env.progress.CompleteSection(student.ID, lessonID, sectionID, len(sections), 50))

		progress, err := env.progress.LoadProgress(student.ID, lessonID)
		require.NoError(t, err)
		require.NotNil(t, progress)
		assert.Len(t, progress.CompletedSections, i+1)

		if i < len(sections)-1 {
			assert.Nil(t, progress.CompletedAt)
			assert.Equal(t, 0, env.studentPoints(t, student.ID))
		} else {
			assert.NotNil(t, progress.CompletedAt)
			assert.Equal(t, 50, env.studentPoints(t, student.ID))
		}
	}
}

func TestCompleteSectionDuplicateAfterCompletionKeepsPoints(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)
	_, lessons := env.createCourse(t, model.Cooking, 1, 40)
	lessonID := lessons[0].ID

	require.NoError(t, env.progress.CompleteSection(student.ID, lessonID, "s1", 2, 40))
	require.NoError(t, env.progress.CompleteSection(student.ID, lessonID, "s2", 2, 40))
	require.NoError(t, env.progress.CompleteSection(student.ID, lessonID, "s2", 2, 40))

	assert.Equal(t, 40, env.studentPoints(t, student.ID))
}

func TestCategoryPercentageAfterPartialCourse(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)
	_, lessons := env.createCourse(t, model.Cooking, 3, 10)

	// Two lessons fully complete, the third only partially.
	for _, lesson := range lessons[:2] {
		require.NoError(t, env.progress.CompleteSection(student.ID, lesson.ID, "a", 2, 10))
		require.NoError(t, env.progress.CompleteSection(student.ID, lesson.ID, "b", 2, 10))
	}
	require.NoError(t, env.progress.CompleteSection(student.ID, lessons[2].ID, "a", 2, 10))

	assert.Equal(t, 67, env.categoryProgress(t, student.ID, model.Cooking))
	assert.Equal(t, 20, env.studentPoints(t, student.ID))
}

func TestPointsNeverDecrease(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)
	_, lessons := env.createCourse(t, model.Cooking, 2, 25)

	last := 0
	for _, lesson := range lessons {
		for _, sectionID := range []string{"a", "b", "a", "b"} {
			require.NoError(t, env.progress.CompleteSection(student.ID, lesson.ID, sectionID, 2, 25))
			points := env.studentPoints(t, student.ID)
			assert.GreaterOrEqual(t, points, last)
			last = points
		}
	}
	assert.Equal(t, 50, last)
}

func TestLessonCompletionRatioTruncates(t *testing.T) {
	assert.Equal(t, 0, LessonCompletionRatio(0, 4))
	assert.Equal(t, 33, LessonCompletionRatio(1, 3))
	assert.Equal(t, 66, LessonCompletionRatio(2, 3))
	assert.Equal(t, 100, LessonCompletionRatio(3, 3))
	assert.Equal(t, 0, LessonCompletionRatio(5, 0))
}

func TestCategoryPercentageRoundsAndHandlesEmpty(t *testing.T) {
	assert.Equal(t, 67, CategoryPercentage(2, 3))
	assert.Equal(t, 33, CategoryPercentage(1, 3))
	assert.Equal(t, 50, CategoryPercentage(1, 2))
	assert.Equal(t, 0, CategoryPercentage(0, 0))
	assert.Equal(t, 100, CategoryPercentage(7, 7))
}

func TestLoadProgressAbsentIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)

	progress, err := env.progress.LoadProgress(student.ID, "never-started")
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestReconcileCorrectsFalseHundred(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)
	_, lessons := env.createCourse(t, model.Cooking, 2, 10)

	// Only one of two lessons is complete, but the stored map says 100.
	require.NoError(t, env.progress.CompleteSection(student.ID, lessons[0].ID, "a", 1, 10))

	progress := model.DefaultCourseProgress()
	progress[model.Cooking] = 100
	require.NoError(t, env.students.Students.UpdateCourseProgress(student.ID, progress))

	require.NoError(t, env.progress.ReconcileCourseCompletion(student.ID))
	assert.Equal(t, 99, env.categoryProgress(t, student.ID, model.Cooking))
}

func TestReconcileRestoresTrueHundred(t *testing.T) {
	env := newTestEnv(t)
	student := env.createStudent(t, 1)
	_, lessons := env.createCourse(t, model.Cooking, 2, 10)

	for _, lesson := range lessons {
		require.NoError(t, env.progress.CompleteSection(student.ID, lesson.ID, "a", 1, 10))
	}

	// Knock the stored value out of sync.
	progress := model.DefaultCourseProgress()
	progress[model.Cooking] = 40
	require.NoError(t, env.students.Students.UpdateCourseProgress(student.ID, progress))

	require.NoError(t, env.progress.ReconcileCourseCompletion(student.ID))
	assert.Equal(t, 100, env.categoryProgress(t, student.ID, model.Cooking))
}
