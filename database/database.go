package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type Database struct {
	blogPostRepo   *BlogPostRepo
	blogTagRepo    *BlogTagRepo
	projectRepo    *ProjectRepo
	projectTagRepo *ProjectTagRepo
	discussionRepo *DiscussionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogPostRepo:   NewBlogPostRepo(db),
		blogTagRepo:    NewBlogTagRepo(db),
		projectRepo:    NewProjectRepo(db),
		projectTagRepo: NewProjectTagRepo(db),
		discussionRepo: NewDiscussionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTagRepo() *ProjectTagRepo {
	return d.projectTagRepo
}

func (d Database) DiscussionRepo() *DiscussionRepo {
	return d.discussionRepo
}

// Migrate keeps the schema in sync with the model structs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.ProjectTag{},
		&models.BlogPost{},
		&models.BlogTag{},
		&models.DiscussionRequest{},
	)
}
