package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DiscussionRequest is one project-discussion form submission. Rows are
// written once by the submission pipeline and never updated or deleted by
// the application.
type DiscussionRequest struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name    string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email   string    `json:"email" db:"email" gorm:"type:text;not null"`
	Company string    `json:"company,omitempty" db:"company" gorm:"type:text"`
	Phone   string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`

	ProjectType    string                       `json:"project_type" db:"project_type" gorm:"type:text;not null"`
	Budget         string                       `json:"budget,omitempty" db:"budget" gorm:"type:text"`
	Timeline       string                       `json:"timeline,omitempty" db:"timeline" gorm:"type:text"`
	TargetAudience string                       `json:"target_audience,omitempty" db:"target_audience" gorm:"type:text"`
	Technologies   datatypes.JSONSlice[string]  `json:"technologies,omitempty" db:"technologies" gorm:"type:jsonb"`
	Features       datatypes.JSONSlice[string]  `json:"features,omitempty" db:"features" gorm:"type:jsonb"`

	Message           string `json:"message" db:"message" gorm:"type:text;not null"`
	AdditionalDetails string `json:"additional_details,omitempty" db:"additional_details" gorm:"type:text"`
	ContactPreference string `json:"contact_preference,omitempty" db:"contact_preference" gorm:"type:text"`
	Urgency           string `json:"urgency,omitempty" db:"urgency" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
