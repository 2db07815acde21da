package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating left by a user, optionally about a specific job.
type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	JobID     *uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	Job       *Job       `gorm:"foreignKey:JobID;constraint:OnDelete:SET NULL" json:"-"`
	Rating    int        `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string     `gorm:"type:text" json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
