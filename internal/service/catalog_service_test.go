package service

import (
	"testing"

	"little_learners_backend/internal/catalog"
	"little_learners_backend/internal/model"
	"little_learners_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltinSlugWithEmptyStore(t *testing.T) {
	env := newTestEnv(t)

	course, lessons, err := env.catalog.Resolve("money-adventurers-7-9")
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "Money Adventurers", course.Title)

	entry, _ := catalog.Lookup("money-adventurers-7-9")
	assert.Len(t, lessons, len(entry.Lessons))
	assert.Equal(t, catalog.TotalPoints(entry.Lessons), course.Points)
}

func TestResolveUnknownIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.catalog.Resolve("unknown-slug")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestResolveLegacyCourseReplacesStoredLessons(t *testing.T) {
	env := newTestEnv(t)

	course := &model.Course{
		UUIDBase: model.UUIDBase{ID: catalog.MoneyExplorersID},
		Title:    "Money Explorers",
		Category: model.Career,
	}
	require.NoError(t, env.db.Create(course).Error)
	// A stored lesson set that is known to be incomplete.
	require.NoError(t, env.db.Create(&model.Lesson{
		CourseID:    catalog.MoneyExplorersID,
		Title:       "What is Money?",
		OrderNumber: 1,
		Points:      50,
	}).Error)

	resolved, lessons, err := env.catalog.Resolve(catalog.MoneyExplorersID)
	require.NoError(t, err)
	assert.Equal(t, "Money Explorers!", resolved.Title)
	require.Len(t, lessons, 4)
	assert.Equal(t, "What is Money?", lessons[0].Title)
	assert.Equal(t, 200, resolved.Points)
}

func TestResolveMergesStoredAndBuiltinByTitle(t *testing.T) {
	env := newTestEnv(t)

	course := &model.Course{
		UUIDBase: model.UUIDBase{ID: "super-thinkers-7-9"},
		Title:    "Super Thinkers",
		Category: model.Mindset,
	}
	require.NoError(t, env.db.Create(course).Error)
	require.NoError(t, env.db.Create(&model.Lesson{
		UUIDBase:    model.UUIDBase{ID: "db-row"},
		CourseID:    "super-thinkers-7-9",
		Title:       "Your Brain is a Muscle – Grow It!",
		Description: "edited in the cms",
		OrderNumber: 1,
		Points:      80,
	}).Error)

	_, lessons, err := env.catalog.Resolve("super-thinkers-7-9")
	require.NoError(t, err)

	entry, _ := catalog.Lookup("super-thinkers-7-9")
	require.Len(t, lessons, len(entry.Lessons))
	assert.Equal(t, "db-row", lessons[0].ID)
	assert.Equal(t, 80, lessons[0].Points)
}

func TestResolvePersistsRecomputedPointsForStoredUUIDCourse(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.createCourse(t, model.Social, 2, 15)

	resolved, _, err := env.catalog.Resolve(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, resolved.Points)

	var stored model.Course
	require.NoError(t, env.db.Where("id = ?", course.ID).First(&stored).Error)
	assert.Equal(t, 30, stored.Points)
}

func TestResolveIsRepeatable(t *testing.T) {
	env := newTestEnv(t)

	a, lessonsA, err := env.catalog.Resolve("life-ready-10-12")
	require.NoError(t, err)
	b, lessonsB, err := env.catalog.Resolve("life-ready-10-12")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, lessonsA, lessonsB)
}
