package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"gorm.io/gorm"
)

// JobApplication is a candidate submission from the careers page
type JobApplication struct {
	ID           uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	FirstName    string                 `gorm:"size:100;not null" json:"first_name"`
	LastName     string                 `gorm:"size:100;not null" json:"last_name"`
	Email        string                 `gorm:"size:255;not null;index" json:"email"`
	Phone        string                 `gorm:"size:50" json:"phone"`
	Position     string                 `gorm:"size:255;not null" json:"position"`
	Availability string                 `gorm:"size:255" json:"availability"`
	Experience   string                 `gorm:"type:text" json:"experience"`
	ResumeURL    *string                `gorm:"size:500" json:"resume_url,omitempty"`
	Status       enum.ApplicationStatus `gorm:"default:0;index" json:"status"`
	AdminNotes   *string                `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	DeletedAt    gorm.DeletedAt         `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new application
func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JobApplication model
func (JobApplication) TableName() string {
	return "job_applications"
}

// FullName returns the applicant's first and last name
func (a *JobApplication) FullName() string {
	return a.FirstName + " " + a.LastName
}
