package catalog

import (
	"sort"

	"little_learners_backend/internal/model"
)

// EnsureSections guarantees every lesson exposes a playable section list.
// A lesson with no stored sections gets the default video/interactive/challenge
// trio; a lesson that has sections but no challenge gets one appended, so the
// completion denominator always includes the final challenge step.
func EnsureSections(lessonID string, stored []model.LessonSection) []model.LessonSection {
	if len(stored) == 0 {
		return defaultSections(lessonID)
	}

	sections := make([]model.LessonSection, len(stored))
	copy(sections, stored)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].OrderNumber < sections[j].OrderNumber
	})

	for _, s := range sections {
		if s.Type == model.SectionChallenge {
			return sections
		}
	}

	last := sections[len(sections)-1].OrderNumber
	sections = append(sections, model.LessonSection{
		UUIDBase:    model.UUIDBase{ID: lessonID + "-challenge"},
		LessonID:    lessonID,
		Type:        model.SectionChallenge,
		Content:     model.SectionContent{},
		OrderNumber: last + 1,
	})
	return sections
}

func defaultSections(lessonID string) []model.LessonSection {
	return []model.LessonSection{
		{
			UUIDBase:    model.UUIDBase{ID: lessonID + "-video"},
			LessonID:    lessonID,
			Type:        model.SectionVideo,
			Content:     model.SectionContent{},
			OrderNumber: 1,
		},
		{
			UUIDBase:    model.UUIDBase{ID: lessonID + "-interactive"},
			LessonID:    lessonID,
			Type:        model.SectionInteractive,
			Content:     model.SectionContent{},
			OrderNumber: 2,
		},
		{
			UUIDBase:    model.UUIDBase{ID: lessonID + "-challenge"},
			LessonID:    lessonID,
			Type:        model.SectionChallenge,
			Content:     model.SectionContent{},
			OrderNumber: 3,
		},
	}
}
