package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Difficulty grades how hard a case study's task was.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// CaseStudy is an admin-authored example of a delivered job.
// TimeToDeliver is measured in minutes.
type CaseStudy struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string                      `gorm:"size:200;not null" json:"title"`
	Category        string                      `gorm:"size:100;not null;index" json:"category"`
	Problem         string                      `gorm:"type:text;not null" json:"problem"`
	Solution        string                      `gorm:"type:text;not null" json:"solution"`
	TimeToDeliver   int                         `gorm:"not null" json:"time_to_deliver"`
	DifficultyLevel Difficulty                  `gorm:"size:20;not null" json:"difficulty_level"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	ImageURL        string                      `gorm:"size:500" json:"image_url"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (cs *CaseStudy) BeforeCreate(_ *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}
