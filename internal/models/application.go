package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the state of a doer's application. Transitions are
// chosen by the job's poster; any known value is accepted.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationCompleted ApplicationStatus = "completed"
)

// Valid reports whether s is one of the known application states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationCompleted:
		return true
	}
	return false
}

// Application links a doer to a job.
type Application struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	JobID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	Job           *Job              `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	ApplicantID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"applicant_id"`
	Applicant     *User             `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"-"`
	Status        ApplicationStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	SubmittedWork string            `gorm:"type:text" json:"submitted_work"`
	CreatedAt     time.Time         `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ApplicationDetail is an application with its applicant attached, as shown
// to the job's poster.
type ApplicationDetail struct {
	Application
	Applicant *UserSummary `json:"applicant"`
}

// Earnings aggregates rewards over a doer's completed applications.
type Earnings struct {
	TotalCredits       float64 `json:"total_credits"`
	TotalCash          float64 `json:"total_cash"`
	TotalCompletedJobs int64   `json:"total_completed_jobs"`
}
