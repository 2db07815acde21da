package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobStatus is the lifecycle state of a job listing.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
)

// Valid reports whether s is one of the known job states.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted:
		return true
	}
	return false
}

// RewardType is the unit a job's payout is denominated in.
type RewardType string

const (
	RewardCredits RewardType = "credits"
	RewardCash    RewardType = "cash"
)

// Valid reports whether t is one of the known reward types.
func (t RewardType) Valid() bool {
	return t == RewardCredits || t == RewardCash
}

// Job is a short-term task published by a poster.
// Slug is written on create only.
type Job struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string                      `gorm:"size:200;not null" json:"title"`
	Slug           string                      `gorm:"size:255;uniqueIndex;not null;<-:create" json:"slug"`
	Description    string                      `gorm:"type:text;not null" json:"description"`
	Reward         float64                     `gorm:"type:decimal(10,2);not null;default:0" json:"reward"`
	RewardType     RewardType                  `gorm:"size:20;not null" json:"reward_type"`
	PostedBy       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"posted_by"`
	Poster         *User                       `gorm:"foreignKey:PostedBy;constraint:OnDelete:CASCADE" json:"-"`
	Department     string                      `gorm:"size:50;index" json:"department"`
	EstimatedTime  string                      `gorm:"size:50" json:"estimated_time"`
	SkillsRequired datatypes.JSONSlice[string] `json:"skills_required"`
	Status         JobStatus                   `gorm:"size:20;not null;default:open;index" json:"status"`
	IsFeatured     bool                        `gorm:"not null;default:false" json:"is_featured"`
	ImageURL       string                      `gorm:"size:500" json:"image_url"`
	CreatedAt      time.Time                   `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether userID posted the job.
func (j *Job) OwnedBy(userID uuid.UUID) bool {
	return j != nil && j.PostedBy == userID
}
