package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// FindByBlogPostID returns all tags for a given blog post
func (r *BlogTagRepo) FindByBlogPostID(blogPostID uuid.UUID) ([]models.BlogTag, error) {
	var tags []models.BlogTag
	err := r.db.Where("blog_post_id = ?", blogPostID).Find(&tags).Error
	return tags, err
}

// Add inserts a new blog tag into the database
func (r *BlogTagRepo) Add(tag *models.BlogTag) error {
	return r.db.Create(tag).Error
}

// DeleteByBlogPostID removes all tags for a given blog post
func (r *BlogTagRepo) DeleteByBlogPostID(blogPostID uuid.UUID) error {
	return r.db.Where("blog_post_id = ?", blogPostID).Delete(&models.BlogTag{}).Error
}
