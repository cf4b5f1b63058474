package repository

import (
	"little_learners_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByID(id string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("id = ?", id).First(&student).Error
	return &student, err
}

// FindByIDForParent scopes the lookup to the owning parent so one family
// can never read or mutate another family's profile.
func (r *StudentRepository) FindByIDForParent(id string, parentID uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("id = ? AND parent_id = ?", id, parentID).First(&student).Error
	return &student, err
}

func (r *StudentRepository) FindByParent(parentID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Where("parent_id = ?", parentID).Order("created_at ASC").Find(&students).Error
	return students, err
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Save(student).Error
}

func (r *StudentRepository) Delete(id string, parentID uint) error {
	return r.DB.Where("id = ? AND parent_id = ?", id, parentID).Delete(&model.Student{}).Error
}

// AddPoints applies a point delta in SQL so concurrent awards from two
// sections never lose an increment.
func (r *StudentRepository) AddPoints(studentID string, delta int) error {
	return r.DB.Model(&model.Student{}).
		Where("id = ?", studentID).
		Update("points", gorm.Expr("points + ?", delta)).
		Error
}

func (r *StudentRepository) UpdateCourseProgress(studentID string, progress model.CourseProgressMap) error {
	return r.DB.Model(&model.Student{}).
		Where("id = ?", studentID).
		Update("course_progress", progress).
		Error
}

func (r *StudentRepository) UpdateAvatar(studentID string, avatarURL string) error {
	return r.DB.Model(&model.Student{}).
		Where("id = ?", studentID).
		Update("avatar_url", avatarURL).
		Error
}
