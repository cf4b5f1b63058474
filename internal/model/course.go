package model

// swagger:model Course
type Course struct {
	UUIDBase
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Category    Category `gorm:"type:enum('MINDSET','HOME_MAINTENANCE','COOKING','CAREER','SOCIAL');not null" json:"category"`
	AgeGroup    AgeGroup `gorm:"type:enum('GROUP_5_6','GROUP_7_9','GROUP_10_12')" json:"ageGroup"`
	// Points is derived: the sum of the course's lesson points. It is
	// recomputed by the catalog resolver and persisted best-effort.
	Points  int      `gorm:"default:0" json:"points"`
	Lessons []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
