package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"little_learners_backend/internal/model"
)

func TestLookupKnownCourse(t *testing.T) {
	entry, ok := Lookup("money-adventurers-7-9")
	require.True(t, ok)
	assert.Equal(t, "Money Adventurers", entry.Course.Title)
	assert.Equal(t, model.Career, entry.Course.Category)
	assert.Len(t, entry.Lessons, 3)
}

func TestLookupUnknownCourse(t *testing.T) {
	_, ok := Lookup("underwater-basket-weaving-101")
	assert.False(t, ok)
}

func TestLookupReturnsCopy(t *testing.T) {
	a, ok := Lookup(MoneyExplorersID)
	require.True(t, ok)
	a.Lessons[0].Title = "mutated"

	b, ok := Lookup(MoneyExplorersID)
	require.True(t, ok)
	assert.Equal(t, "What is Money?", b.Lessons[0].Title)
}

func TestMoneyExplorersBuiltinLessons(t *testing.T) {
	entry, ok := Lookup(MoneyExplorersID)
	require.True(t, ok)
	require.Len(t, entry.Lessons, 4)
	assert.Equal(t, "What is Money?", entry.Lessons[0].Title)
	assert.Equal(t, "Starting Your Business", entry.Lessons[3].Title)
	assert.Equal(t, 200, TotalPoints(entry.Lessons))
}

func TestMergeLessonsStoredWinsOnTitle(t *testing.T) {
	stored := []model.Lesson{
		{
			UUIDBase:    model.UUIDBase{ID: "db-1"},
			Title:       "What is Money?",
			Description: "updated copy from the cms",
			OrderNumber: 1,
			Points:      75,
		},
	}
	entry, ok := Lookup(MoneyExplorersID)
	require.True(t, ok)

	merged := MergeLessons(stored, entry.Lessons)
	require.Len(t, merged, 4)
	assert.Equal(t, "db-1", merged[0].ID)
	assert.Equal(t, 75, merged[0].Points)
	assert.Equal(t, "What is Work?", merged[1].Title)
}

func TestMergeLessonsSortsByOrderNumber(t *testing.T) {
	stored := []model.Lesson{
		{UUIDBase: model.UUIDBase{ID: "c"}, Title: "Third", OrderNumber: 3},
		{UUIDBase: model.UUIDBase{ID: "a"}, Title: "First", OrderNumber: 1},
	}
	builtin := []model.Lesson{
		{UUIDBase: model.UUIDBase{ID: "b"}, Title: "Second", OrderNumber: 2},
	}

	merged := MergeLessons(stored, builtin)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
}

func TestMergeLessonsEmptyStoredFallsBack(t *testing.T) {
	entry, ok := Lookup("super-thinkers-7-9")
	require.True(t, ok)

	merged := MergeLessons(nil, entry.Lessons)
	assert.Len(t, merged, len(entry.Lessons))
}

func TestEnsureSectionsDefaultTrio(t *testing.T) {
	sections := EnsureSections("st01-your-brain-muscle", nil)
	require.Len(t, sections, 3)
	assert.Equal(t, model.SectionVideo, sections[0].Type)
	assert.Equal(t, model.SectionInteractive, sections[1].Type)
	assert.Equal(t, model.SectionChallenge, sections[2].Type)
	assert.Equal(t, "st01-your-brain-muscle-challenge", sections[2].ID)
}

func TestEnsureSectionsAppendsMissingChallenge(t *testing.T) {
	stored := []model.LessonSection{
		{UUIDBase: model.UUIDBase{ID: "s1"}, LessonID: "l1", Type: model.SectionVideo, OrderNumber: 1},
		{UUIDBase: model.UUIDBase{ID: "s2"}, LessonID: "l1", Type: model.SectionQuiz, OrderNumber: 2},
	}
	sections := EnsureSections("l1", stored)
	require.Len(t, sections, 3)
	assert.Equal(t, "l1-challenge", sections[2].ID)
	assert.Equal(t, 3, sections[2].OrderNumber)
}

func TestEnsureSectionsKeepsExistingChallenge(t *testing.T) {
	stored := []model.LessonSection{
		{UUIDBase: model.UUIDBase{ID: "s2"}, LessonID: "l1", Type: model.SectionChallenge, OrderNumber: 2},
		{UUIDBase: model.UUIDBase{ID: "s1"}, LessonID: "l1", Type: model.SectionVideo, OrderNumber: 1},
	}
	sections := EnsureSections("l1", stored)
	require.Len(t, sections, 2)
	assert.Equal(t, "s1", sections[0].ID)
	assert.Equal(t, "s2", sections[1].ID)
}

func TestAllCoversEveryCourse(t *testing.T) {
	entries := All()
	assert.Len(t, entries, 13)
	for _, e := range entries {
		assert.True(t, model.ValidCategory(e.Course.Category), e.Course.ID)
	}
}
