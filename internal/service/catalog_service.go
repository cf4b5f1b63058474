package service

import (
	"errors"

	"little_learners_backend/internal/catalog"
	"little_learners_backend/internal/model"
	"little_learners_backend/internal/repository"
	"little_learners_backend/internal/util"
	"little_learners_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService resolves a course identifier to a consistent course plus
// lesson list, whether the id is a stored UUID row or one of the built-in
// slugs. Resolution is a pure merge aside from one best-effort write: the
// recomputed point total is persisted for UUID courses.
type CatalogService struct {
	Courses *repository.CourseRepository
	Lessons *repository.LessonRepository
}

func NewCatalogService(courses *repository.CourseRepository, lessons *repository.LessonRepository) *CatalogService {
	return &CatalogService{Courses: courses, Lessons: lessons}
}

// IsWellFormedID reports whether the identifier is a proper UUID, as opposed
// to a catalog slug like "money-makers-10-12".
func IsWellFormedID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Resolve returns the course and its full lesson list, or ErrCourseNotFound
// when neither the store nor the built-in table knows the id.
func (s *CatalogService) Resolve(courseID string) (*model.Course, []model.Lesson, error) {
	stored, err := s.Courses.FindByID(courseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	haveStored := err == nil

	entry, haveBuiltin := catalog.Lookup(courseID)

	var course model.Course
	switch {
	case haveStored:
		course = *stored
	case haveBuiltin:
		course = entry.Course
	default:
		return nil, nil, util.ErrCourseNotFound
	}

	// The legacy course keeps its built-in title even when a stored row
	// carries an older one.
	if courseID == catalog.MoneyExplorersID && haveBuiltin {
		course.Title = entry.Course.Title
	}

	lessons, err := s.resolveLessons(courseID, entry, haveBuiltin)
	if err != nil {
		return nil, nil, err
	}

	course.Points = catalog.TotalPoints(lessons)
	course.Lessons = nil

	if IsWellFormedID(courseID) && haveStored {
		if err := s.Courses.UpdatePoints(courseID, course.Points); err != nil {
			logger.Log.Warn("failed to persist recomputed course points",
				zap.String("courseId", courseID), zap.Error(err))
		}
	}

	return &course, lessons, nil
}

func (s *CatalogService) resolveLessons(courseID string, entry catalog.Entry, haveBuiltin bool) ([]model.Lesson, error) {
	stored, err := s.Lessons.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	// The legacy course's stored lessons are known-incomplete; the built-in
	// list replaces them outright.
	if courseID == catalog.MoneyExplorersID && haveBuiltin {
		lessons := entry.Lessons
		catalog.SortLessons(lessons)
		return lessons, nil
	}

	if !haveBuiltin {
		catalog.SortLessons(stored)
		return stored, nil
	}
	return catalog.MergeLessons(stored, entry.Lessons), nil
}
