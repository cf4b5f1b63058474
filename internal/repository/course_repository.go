package repository

import (
	"little_learners_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", id).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("title ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByAgeGroup(ageGroup model.AgeGroup) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("age_group = ?", ageGroup).Order("title ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByCategory(category model.Category) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("category = ?", category).Order("title ASC").Find(&courses).Error
	return courses, err
}

// UpdatePoints persists the derived point total. Callers treat failures as
// non-fatal since the total is recomputed on every resolve.
func (r *CourseRepository) UpdatePoints(courseID string, points int) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", courseID).
		Update("points", points).
		Error
}
