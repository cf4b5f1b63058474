package repository

import (
	"errors"

	"little_learners_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindByStudentAndLesson returns nil, nil when no row exists yet. A missing
// row just means the student has not started the lesson.
func (r *ProgressRepository) FindByStudentAndLesson(studentID, lessonID string) (*model.StudentProgress, error) {
	var progress model.StudentProgress
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByStudent(studentID string) ([]model.StudentProgress, error) {
	var rows []model.StudentProgress
	err := r.DB.Where("student_id = ?", studentID).Find(&rows).Error
	return rows, err
}

// FindCompletedByStudent returns only rows whose lesson is fully done.
func (r *ProgressRepository) FindCompletedByStudent(studentID string) ([]model.StudentProgress, error) {
	var rows []model.StudentProgress
	err := r.DB.Where("student_id = ? AND completed_at IS NOT NULL", studentID).Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) Create(progress *model.StudentProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) Update(progress *model.StudentProgress) error {
	return r.DB.Save(progress).Error
}
