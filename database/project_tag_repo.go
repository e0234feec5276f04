package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type ProjectTagRepo struct {
	db *gorm.DB
}

func NewProjectTagRepo(db *gorm.DB) *ProjectTagRepo {
	return &ProjectTagRepo{db}
}

// FindByProjectID returns all tags for a given project
func (r *ProjectTagRepo) FindByProjectID(projectID uuid.UUID) ([]models.ProjectTag, error) {
	var tags []models.ProjectTag
	err := r.db.Where("project_id = ?", projectID).Find(&tags).Error
	return tags, err
}

// Add inserts a new project tag into the database
func (r *ProjectTagRepo) Add(tag *models.ProjectTag) error {
	return r.db.Create(tag).Error
}

// DeleteByProjectID removes all tags for a given project
func (r *ProjectTagRepo) DeleteByProjectID(projectID uuid.UUID) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.ProjectTag{}).Error
}
