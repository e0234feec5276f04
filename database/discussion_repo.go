package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// DiscussionRepo persists project-discussion submissions. Records are
// insert-only: there are no update or delete operations.
type DiscussionRepo struct {
	db *gorm.DB
}

func NewDiscussionRepo(db *gorm.DB) *DiscussionRepo {
	return &DiscussionRepo{db}
}

// Add inserts a new discussion request into the database
func (r *DiscussionRepo) Add(request *models.DiscussionRequest) error {
	return r.db.Create(request).Error
}

// FindAll returns all discussion requests, newest first
func (r *DiscussionRepo) FindAll() ([]*models.DiscussionRequest, error) {
	var requests []*models.DiscussionRequest
	err := r.db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// FindSince returns requests created at or after the cutoff, newest first
func (r *DiscussionRepo) FindSince(cutoff time.Time) ([]*models.DiscussionRequest, error) {
	var requests []*models.DiscussionRequest
	err := r.db.Where("created_at >= ?", cutoff).Order("created_at DESC").Find(&requests).Error
	return requests, err
}
