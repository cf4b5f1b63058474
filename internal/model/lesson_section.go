package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type SectionType string

const (
	SectionVideo       SectionType = "video"
	SectionInteractive SectionType = "interactive"
	SectionChallenge   SectionType = "challenge"
	SectionQuiz        SectionType = "quiz"
)

func ValidSectionType(t SectionType) bool {
	switch t {
	case SectionVideo, SectionInteractive, SectionChallenge, SectionQuiz:
		return true
	}
	return false
}

// SectionContent is an opaque payload interpreted per section type
// (video url, game config, quiz scenarios).
type SectionContent map[string]interface{}

func (c SectionContent) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	return json.Marshal(c)
}

func (c *SectionContent) Scan(value interface{}) error {
	if value == nil {
		*c = SectionContent{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported section content column type %T", value)
	}
	if len(data) == 0 {
		*c = SectionContent{}
		return nil
	}
	return json.Unmarshal(data, c)
}

// swagger:model LessonSection
type LessonSection struct {
	UUIDBase
	LessonID    string         `gorm:"index;size:64;not null" json:"lessonId"`
	Type        SectionType    `gorm:"type:enum('video','interactive','challenge','quiz');not null" json:"type"`
	Content     SectionContent `gorm:"type:json" json:"content"`
	OrderNumber int            `gorm:"default:0" json:"orderNumber"`
}

func (LessonSection) TableName() string {
	return "lesson_sections"
}
