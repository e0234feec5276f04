package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// setupRoutes wires every endpoint. Reads and form submissions are public;
// content writes require the admin token.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, chatLimiter *rate.Limiter, startupTime time.Time) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public content reads
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/project/{projectID}/related", handlers.projectHandler.getRelatedProjects())
		r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blog-post/{blogPostID}", handlers.blogPostHandler.getBlogPost())

		// Form submissions
		r.Post("/contact", handlers.discussionHandler.submitContact())
		r.Post("/project-discussion", handlers.discussionHandler.submitDiscussion())

		// Chatbot
		r.With(rateLimitMiddleware(chatLimiter)).Post("/chat", handlers.chatHandler.chat())

		// Asset downloads
		r.Get("/assets/resume", handlers.assetsHandler.resumeURL())
		r.Get("/assets/gallery/{key}", handlers.assetsHandler.galleryURL())

		r.Get("/health", healthHandler(startupTime))
	})

	// Content management, admin only
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-post/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
	})
}

func healthHandler(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.Logger)
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}
