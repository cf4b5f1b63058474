package catalog

import (
	"sort"

	"little_learners_backend/internal/model"
)

// MergeLessons combines lessons loaded from the database with the built-in
// list for the same course. Database rows win on exact title match; built-in
// lessons whose titles are absent are appended. The result is sorted by order
// number, ties broken by title so output is deterministic.
func MergeLessons(stored, builtin []model.Lesson) []model.Lesson {
	merged := make([]model.Lesson, 0, len(stored)+len(builtin))
	merged = append(merged, stored...)

	seen := make(map[string]bool, len(stored))
	for _, l := range stored {
		seen[l.Title] = true
	}
	for _, l := range builtin {
		if !seen[l.Title] {
			merged = append(merged, l)
		}
	}

	SortLessons(merged)
	return merged
}

// SortLessons orders lessons by order number ascending, stable on title.
func SortLessons(lessons []model.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		if lessons[i].OrderNumber != lessons[j].OrderNumber {
			return lessons[i].OrderNumber < lessons[j].OrderNumber
		}
		return lessons[i].Title < lessons[j].Title
	})
}

// TotalPoints sums lesson points; course points are always derived this way,
// never trusted from the stored course row.
func TotalPoints(lessons []model.Lesson) int {
	total := 0
	for _, l := range lessons {
		total += l.Points
	}
	return total
}
