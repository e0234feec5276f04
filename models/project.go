package models

import "github.com/google/uuid"

// Project represents a complete project with metadata
type Project struct {
	ID          uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string       `json:"title" db:"title" gorm:"type:text;not null;unique"`
	Description string       `json:"description" db:"description" gorm:"type:text;not null"`
	GithubLink  string       `json:"github_link" db:"github_link" gorm:"type:text;not null"`
	DemoLink    string       `json:"demo_link" db:"demo_link" gorm:"type:text;not null"`
	Enabled     bool         `json:"enabled" db:"enabled" gorm:"type:boolean;not null;default:true"`
	Timeline    *string      `json:"timeline,omitempty" db:"timeline" gorm:"type:text"`
	TeamSize    *string      `json:"team_size,omitempty" db:"team_size" gorm:"type:text"`
	Role        *string      `json:"role,omitempty" db:"role" gorm:"type:text"`
	Status      *string      `json:"status,omitempty" db:"status" gorm:"type:text"`
	GifLink     *string      `json:"gif_link,omitempty" db:"gif_link" gorm:"type:text"`
	Tags        []ProjectTag `json:"tags,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// TagValues returns the ordered technology-tag list as plain strings.
func (p Project) TagValues() []string {
	values := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		values = append(values, tag.Value)
	}
	return values
}
