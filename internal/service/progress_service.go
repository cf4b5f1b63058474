package service

import (
	"math"
	"sync"
	"time"

	"little_learners_backend/internal/model"
	"little_learners_backend/internal/repository"
	"little_learners_backend/pkg/logger"

	"go.uber.org/zap"
)

// ProgressService owns the authoritative record of which sections a student
// has finished, and keeps the derived per-category percentages consistent
// with the per-lesson facts.
type ProgressService struct {
	Progress *repository.ProgressRepository
	Students *repository.StudentRepository
	Lessons  *repository.LessonRepository
	Catalog  *CatalogService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressService(
	progress *repository.ProgressRepository,
	students *repository.StudentRepository,
	lessons *repository.LessonRepository,
	catalogSvc *CatalogService,
) *ProgressService {
	return &ProgressService{
		Progress: progress,
		Students: students,
		Lessons:  lessons,
		Catalog:  catalogSvc,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lessonLock serializes completions per (student, lesson), so a double click
// from the same client cannot interleave two read-append-write cycles.
func (s *ProgressService) lessonLock(studentID, lessonID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := studentID + "\x00" + lessonID
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// LoadProgress returns the progress row for a lesson, or nil when the
// student has not completed any section yet. Absence is not an error.
func (s *ProgressService) LoadProgress(studentID, lessonID string) (*model.StudentProgress, error) {
	return s.Progress.FindByStudentAndLesson(studentID, lessonID)
}

// CompleteSection records one finished section. Repeat calls for the same
// section are no-ops. When the final section lands, the lesson is stamped
// complete and lessonPoints are awarded as an atomic delta. A store failure
// leaves everything unchanged; the caller may simply retry.
func (s *ProgressService) CompleteSection(studentID, lessonID, sectionID string, totalSections, lessonPoints int) error {
	lock := s.lessonLock(studentID, lessonID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.Progress.FindByStudentAndLesson(studentID, lessonID)
	if err != nil {
		return err
	}

	isNew := progress == nil
	if isNew {
		progress = &model.StudentProgress{
			StudentID:         studentID,
			LessonID:          lessonID,
			CompletedSections: model.SectionIDSet{},
		}
	}

	if progress.CompletedSections.Contains(sectionID) {
		return nil
	}

	progress.CompletedSections = append(progress.CompletedSections, sectionID)

	lessonDone := totalSections > 0 && len(progress.CompletedSections) == totalSections
	if lessonDone && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if isNew {
		err = s.Progress.Create(progress)
	} else {
		err = s.Progress.Update(progress)
	}
	if err != nil {
		return err
	}

	if lessonDone && lessonPoints > 0 {
		if err := s.Students.AddPoints(studentID, lessonPoints); err != nil {
			return err
		}
	}

	// Derived state; reconciliation repairs it if this fails.
	if err := s.updateCategoryProgress(studentID, lessonID); err != nil {
		logger.Log.Warn("failed to update category progress",
			zap.String("studentId", studentID),
			zap.String("lessonId", lessonID),
			zap.Error(err))
	}

	return nil
}

// LessonCompletionRatio is the integer display percentage for one lesson.
// Truncation, not rounding.
func LessonCompletionRatio(completedSections, totalSections int) int {
	if totalSections <= 0 {
		return 0
	}
	return completedSections * 100 / totalSections
}

// CategoryPercentage is the stored per-category value: completed lessons
// over total lessons, rounded to the nearest integer. Zero lessons means
// zero percent, not a division error.
func CategoryPercentage(completedLessons, totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completedLessons) / float64(totalLessons)))
}

func (s *ProgressService) updateCategoryProgress(studentID, lessonID string) error {
	lesson, err := s.Lessons.FindByID(lessonID)
	if err != nil {
		return err
	}

	course, lessons, err := s.Catalog.Resolve(lesson.CourseID)
	if err != nil {
		return err
	}

	completed, err := s.completedLessonCount(studentID, lessons)
	if err != nil {
		return err
	}

	return s.writeCategoryPercentage(studentID, course.Category, CategoryPercentage(completed, len(lessons)))
}

func (s *ProgressService) completedLessonCount(studentID string, lessons []model.Lesson) (int, error) {
	rows, err := s.Progress.FindCompletedByStudent(studentID)
	if err != nil {
		return 0, err
	}
	done := make(map[string]bool, len(rows))
	for _, r := range rows {
		done[r.LessonID] = true
	}
	count := 0
	for _, l := range lessons {
		if done[l.ID] {
			count++
		}
	}
	return count, nil
}

func (s *ProgressService) writeCategoryPercentage(studentID string, category model.Category, pct int) error {
	student, err := s.Students.FindByID(studentID)
	if err != nil {
		return err
	}
	progress := student.CourseProgress
	if progress == nil {
		progress = model.DefaultCourseProgress()
	}
	if progress[category] == pct {
		return nil
	}
	progress[category] = pct
	return s.Students.UpdateCourseProgress(studentID, progress)
}

// ReconcileCourseCompletion walks every course and repairs the stored
// category percentage when it disagrees with the lesson-derived truth: a
// fully completed course reads 100, an incomplete one never does.
func (s *ProgressService) ReconcileCourseCompletion(studentID string) error {
	student, err := s.Students.FindByID(studentID)
	if err != nil {
		return err
	}

	courses, err := s.Catalog.Courses.FindAll()
	if err != nil {
		return err
	}

	progress := student.CourseProgress
	if progress == nil {
		progress = model.DefaultCourseProgress()
	}
	dirty := false

	for _, course := range courses {
		_, lessons, err := s.Catalog.Resolve(course.ID)
		if err != nil {
			logger.Log.Warn("reconcile skipped unresolvable course",
				zap.String("courseId", course.ID), zap.Error(err))
			continue
		}
		if len(lessons) == 0 {
			continue
		}

		completed, err := s.completedLessonCount(studentID, lessons)
		if err != nil {
			return err
		}

		allDone := completed == len(lessons)
		stored := progress[course.Category]

		switch {
		case allDone && stored != 100:
			progress[course.Category] = 100
			dirty = true
		case !allDone && stored == 100:
			progress[course.Category] = 99
			dirty = true
		}
	}

	if !dirty {
		return nil
	}
	return s.Students.UpdateCourseProgress(studentID, progress)
}
