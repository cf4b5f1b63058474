package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SectionIDSet holds completed section ids. Membership is what matters;
// insertion order is preserved only for readability of the stored JSON.
type SectionIDSet []string

func (s SectionIDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s SectionIDSet) Value() (driver.Value, error) {
	if s == nil {
		s = SectionIDSet{}
	}
	return json.Marshal(s)
}

func (s *SectionIDSet) Scan(value interface{}) error {
	if value == nil {
		*s = SectionIDSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported completed_sections column type %T", value)
	}
	if len(data) == 0 {
		*s = SectionIDSet{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// StudentProgress is one row per (student, lesson) pair. Created on first
// section completion, updated thereafter, never deleted.
// swagger:model StudentProgress
type StudentProgress struct {
	BaseModel
	StudentID         string       `gorm:"size:64;index:idx_student_lesson,unique;not null" json:"studentId"`
	LessonID          string       `gorm:"size:64;index:idx_student_lesson,unique;not null" json:"lessonId"`
	CompletedSections SectionIDSet `gorm:"type:json" json:"completedSections"`
	// CompletedAt is non-nil iff every section of the lesson was in the
	// completed set at last sync.
	CompletedAt *time.Time `json:"completedAt"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}
