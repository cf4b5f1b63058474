package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Category string

const (
	Mindset         Category = "MINDSET"
	HomeMaintenance Category = "HOME_MAINTENANCE"
	Cooking         Category = "COOKING"
	Career          Category = "CAREER"
	Social          Category = "SOCIAL"
)

// Categories lists the five fixed course topics, in display order.
var Categories = []Category{Mindset, HomeMaintenance, Cooking, Career, Social}

func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type AgeGroup string

const (
	Group5To6   AgeGroup = "GROUP_5_6"
	Group7To9   AgeGroup = "GROUP_7_9"
	Group10To12 AgeGroup = "GROUP_10_12"
)

// CourseProgressMap is the per-category completion percentage (0-100),
// stored as a JSON column on the student row.
type CourseProgressMap map[Category]int

// DefaultCourseProgress returns a zeroed map covering every category.
func DefaultCourseProgress() CourseProgressMap {
	m := make(CourseProgressMap, len(Categories))
	for _, c := range Categories {
		m[c] = 0
	}
	return m
}

func (m CourseProgressMap) Value() (driver.Value, error) {
	if m == nil {
		m = DefaultCourseProgress()
	}
	return json.Marshal(m)
}

func (m *CourseProgressMap) Scan(value interface{}) error {
	if value == nil {
		*m = DefaultCourseProgress()
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported course_progress column type %T", value)
	}
	if len(data) == 0 {
		*m = DefaultCourseProgress()
		return nil
	}
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	// Older rows may predate a category; fill the gaps so callers can
	// index the map without checking.
	for _, c := range Categories {
		if _, ok := (*m)[c]; !ok {
			(*m)[c] = 0
		}
	}
	return nil
}

// swagger:model Student
type Student struct {
	UUIDBase
	ParentID       uint              `gorm:"index;not null" json:"parentId"`
	FirstName      string            `gorm:"size:100;not null" json:"firstName"`
	LastName       string            `gorm:"size:100;not null" json:"lastName"`
	Birthday       time.Time         `gorm:"type:date;not null" json:"birthday"`
	AgeGroup       AgeGroup          `gorm:"type:enum('GROUP_5_6','GROUP_7_9','GROUP_10_12');not null" json:"ageGroup"`
	AvatarURL      string            `gorm:"size:255" json:"avatarUrl"`
	Points         int               `gorm:"default:0" json:"points"`
	CourseProgress CourseProgressMap `gorm:"type:json" json:"courseProgress"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
