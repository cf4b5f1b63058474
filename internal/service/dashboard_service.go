package service

import (
	"context"

	"little_learners_backend/internal/model"
	"little_learners_backend/internal/repository"
	"little_learners_backend/pkg/logger"

	"go.uber.org/zap"
)

// Dashboard is the parent home screen: the active student, the family's
// profiles, and the course grid for the active student's age band.
type Dashboard struct {
	Student        *model.Student          `json:"student"`
	Students       []model.Student         `json:"students"`
	Courses        []model.Course          `json:"courses"`
	CourseProgress model.CourseProgressMap `json:"courseProgress"`
}

type DashboardService struct {
	Students *StudentService
	Catalog  *CatalogService
	Progress *ProgressService
	Courses  *repository.CourseRepository
}

func NewDashboardService(
	students *StudentService,
	catalogSvc *CatalogService,
	progress *ProgressService,
	courses *repository.CourseRepository,
) *DashboardService {
	return &DashboardService{
		Students: students,
		Catalog:  catalogSvc,
		Progress: progress,
		Courses:  courses,
	}
}

// Load builds the dashboard for a parent. Stored percentages are reconciled
// against the lesson facts first, so a stale 100% never survives a page load.
func (s *DashboardService) Load(ctx context.Context, parentID uint) (*Dashboard, error) {
	student, err := s.Students.SelectedStudent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if err := s.Progress.ReconcileCourseCompletion(student.ID); err != nil {
		logger.Log.Warn("dashboard reconcile failed",
			zap.String("studentId", student.ID), zap.Error(err))
	} else {
		// Re-read so corrected percentages reach the response.
		student, err = s.Students.GetStudent(student.ID, parentID)
		if err != nil {
			return nil, err
		}
	}

	students, err := s.Students.ListStudents(parentID)
	if err != nil {
		return nil, err
	}

	courses, err := s.CourseGrid(student.AgeGroup)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Student:        student,
		Students:       students,
		Courses:        courses,
		CourseProgress: student.CourseProgress,
	}, nil
}

// CourseGrid lists the courses for an age band with resolved point totals.
func (s *DashboardService) CourseGrid(ageGroup model.AgeGroup) ([]model.Course, error) {
	courses, err := s.Courses.FindByAgeGroup(ageGroup)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		resolved, _, err := s.Catalog.Resolve(courses[i].ID)
		if err != nil {
			logger.Log.Warn("course grid resolve failed",
				zap.String("courseId", courses[i].ID), zap.Error(err))
			continue
		}
		courses[i].Points = resolved.Points
		courses[i].Title = resolved.Title
	}
	return courses, nil
}
