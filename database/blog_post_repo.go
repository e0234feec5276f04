package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns all blog posts from the database
func (r *BlogPostRepo) FindAll() ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.Preload("Tags").Order("date_added DESC").Find(&posts).Error
	return posts, err
}

// FindByID returns a blog post by its ID
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Tags").First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogPost{}, "id = ?", id).Error
}
