package api

import (
	"github.com/rpupo63/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, deps Dependencies) *routeHandlers {
	return &routeHandlers{
		projectHandler:    newProjectHandler(db.ProjectRepo(), db.ProjectTagRepo(), deps.RelatedCache),
		blogPostHandler:   newBlogPostHandler(db.BlogPostRepo(), db.BlogTagRepo()),
		discussionHandler: newDiscussionHandler(deps.Discussion),
		chatHandler:       newChatHandler(deps.Chat),
		assetsHandler:     newAssetsHandler(deps.Assets),
	}
}
