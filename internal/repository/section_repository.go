package repository

import (
	"little_learners_backend/internal/model"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) Create(section *model.LessonSection) error {
	return r.DB.Create(section).Error
}

func (r *SectionRepository) FindByLesson(lessonID string) ([]model.LessonSection, error) {
	var sections []model.LessonSection
	err := r.DB.Where("lesson_id = ?", lessonID).Order("order_number ASC").Find(&sections).Error
	return sections, err
}
