package api

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler    projectHandler
	blogPostHandler   blogPostHandler
	discussionHandler discussionHandler
	chatHandler       chatHandler
	assetsHandler     assetsHandler
}

// DiscussionSubmitter runs the submission pipeline for the two form
// variants.
type DiscussionSubmitter interface {
	Submit(ctx context.Context, in services.DiscussionSubmission) (services.SubmissionAck, error)
	SubmitContact(ctx context.Context, name, email, message string) (services.SubmissionAck, error)
}

// ChatReplier answers a single chat turn.
type ChatReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// AssetLinker hands out presigned download URLs.
type AssetLinker interface {
	ResumeURL(ctx context.Context) (string, error)
	GalleryURL(ctx context.Context, key string) (string, error)
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"email"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}
