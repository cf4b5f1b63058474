package service

import (
	"context"
	"errors"
	"time"

	"little_learners_backend/internal/model"
	"little_learners_backend/internal/repository"
	"little_learners_backend/internal/session"
	"little_learners_backend/internal/util"
	"little_learners_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StudentService struct {
	Students *repository.StudentRepository
	Sessions session.Store
}

func NewStudentService(students *repository.StudentRepository, sessions session.Store) *StudentService {
	return &StudentService{Students: students, Sessions: sessions}
}

// validateBirthday checks the date itself before the age range, so the
// caller can tell a malformed date from an out-of-range one.
func validateBirthday(birthday time.Time) error {
	if birthday.IsZero() || birthday.After(time.Now()) {
		return util.ErrInvalidBirthday
	}
	if !util.ValidStudentAge(birthday, time.Now()) {
		return util.ErrAgeOutOfRange
	}
	return nil
}

func (s *StudentService) CreateStudent(parentID uint, firstName, lastName string, birthday time.Time) (*model.Student, error) {
	if err := validateBirthday(birthday); err != nil {
		return nil, err
	}

	student := &model.Student{
		ParentID:       parentID,
		FirstName:      firstName,
		LastName:       lastName,
		Birthday:       birthday,
		AgeGroup:       util.AgeGroupFor(birthday, time.Now()),
		Points:         0,
		CourseProgress: model.DefaultCourseProgress(),
	}
	if err := s.Students.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) ListStudents(parentID uint) ([]model.Student, error) {
	students, err := s.Students.FindByParent(parentID)
	if err != nil {
		return nil, err
	}
	// Older rows may have gaps in the progress map; normalize for display.
	for i := range students {
		if students[i].CourseProgress == nil {
			students[i].CourseProgress = model.DefaultCourseProgress()
		}
	}
	return students, nil
}

func (s *StudentService) GetStudent(id string, parentID uint) (*model.Student, error) {
	student, err := s.Students.FindByIDForParent(id, parentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	if student.CourseProgress == nil {
		student.CourseProgress = model.DefaultCourseProgress()
	}
	return student, nil
}

func (s *StudentService) UpdateStudent(id string, parentID uint, firstName, lastName string, birthday time.Time) (*model.Student, error) {
	student, err := s.GetStudent(id, parentID)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		student.FirstName = firstName
	}
	if lastName != "" {
		student.LastName = lastName
	}
	if !birthday.IsZero() {
		if err := validateBirthday(birthday); err != nil {
			return nil, err
		}
		student.Birthday = birthday
		student.AgeGroup = util.AgeGroupFor(birthday, time.Now())
	}

	if err := s.Students.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, id string, parentID uint) error {
	if _, err := s.GetStudent(id, parentID); err != nil {
		return err
	}
	if err := s.Students.Delete(id, parentID); err != nil {
		return err
	}

	if selected, _ := s.Sessions.SelectedStudent(ctx, parentID); selected == id {
		if err := s.Sessions.ClearSelectedStudent(ctx, parentID); err != nil {
			logger.Log.Warn("failed to clear selected student", zap.Uint("parentId", parentID), zap.Error(err))
		}
	}
	return nil
}

func (s *StudentService) SetAvatar(id string, parentID uint, avatarURL string) error {
	if _, err := s.GetStudent(id, parentID); err != nil {
		return err
	}
	return s.Students.UpdateAvatar(id, avatarURL)
}

// SelectStudent remembers which profile the family is using.
func (s *StudentService) SelectStudent(ctx context.Context, parentID uint, studentID string) error {
	if _, err := s.GetStudent(studentID, parentID); err != nil {
		return err
	}
	return s.Sessions.SetSelectedStudent(ctx, parentID, studentID)
}

// SelectedStudent restores the remembered profile. A remembered id that no
// longer belongs to the family falls back to the first student.
func (s *StudentService) SelectedStudent(ctx context.Context, parentID uint) (*model.Student, error) {
	students, err := s.ListStudents(parentID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, util.ErrStudentNotFound
	}

	remembered, err := s.Sessions.SelectedStudent(ctx, parentID)
	if err != nil {
		logger.Log.Warn("failed to read selected student", zap.Uint("parentId", parentID), zap.Error(err))
	}
	if remembered != "" {
		for i := range students {
			if students[i].ID == remembered {
				return &students[i], nil
			}
		}
	}

	first := &students[0]
	if err := s.Sessions.SetSelectedStudent(ctx, parentID, first.ID); err != nil {
		logger.Log.Warn("failed to persist selected student", zap.Uint("parentId", parentID), zap.Error(err))
	}
	return first, nil
}
