package model

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	CourseID    string `gorm:"index;size:64;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OrderNumber int    `gorm:"default:0" json:"orderNumber"`
	Points      int    `gorm:"default:0" json:"points"`
	VideoURL    *string `gorm:"size:512" json:"videoUrl"`
}

func (Lesson) TableName() string {
	return "lessons"
}
