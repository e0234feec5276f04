package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	blogTagRepo  *database.BlogTagRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, blogTagRepo *database.BlogTagRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		blogTagRepo:  blogTagRepo,
	}
}

// BlogPostWithTags represents a blog post with its tags
type BlogPostWithTags struct {
	BlogPost models.BlogPost  `json:"blogPost"`
	Tags     []models.BlogTag `json:"tags"`
}

// getAllBlogPosts retrieves all blog posts with their tags
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.blogPostRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog posts", err))
			return
		}

		var postsWithTags []BlogPostWithTags
		for _, post := range posts {
			postsWithTags = append(postsWithTags, BlogPostWithTags{
				BlogPost: *post,
				Tags:     post.Tags,
			})
		}

		h.responder.WriteJSON(w, map[string]any{
			"blogPosts": postsWithTags,
			"total":     len(postsWithTags),
		})
	}
}

// getBlogPost retrieves a specific blog post by ID with its tags
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, ok := h.parseBlogPostID(w, r)
		if !ok {
			return
		}

		post, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog post", err))
			return
		}

		response := BlogPostWithTags{
			BlogPost: *post,
			Tags:     post.Tags,
		}

		h.responder.WriteJSON(w, response)
	}
}

// createBlogPost creates a new blog post
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var post models.BlogPost
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&post); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if post.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
			return
		}
		if post.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("content is required"))
			return
		}

		post.Length = len(post.Content)

		tags := post.Tags
		post.Tags = nil

		if err := h.blogPostRepo.Add(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog post", "blog post", err))
			return
		}

		for i := range tags {
			tags[i].BlogPostID = post.ID
			if tags[i].ID == uuid.Nil {
				tags[i].ID = uuid.New()
			}
			if err := h.blogTagRepo.Add(&tags[i]); err != nil {
				h.logger.Error().Err(err).Str("tag_value", tags[i].Value).Msg("Failed to create blog tag")
			}
		}

		createdPost, err := h.blogPostRepo.FindByID(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created blog post", "blog post", err))
			return
		}

		response := BlogPostWithTags{
			BlogPost: *createdPost,
			Tags:     createdPost.Tags,
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, response)
	}
}

// updateBlogPost updates an existing blog post
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, ok := h.parseBlogPostID(w, r)
		if !ok {
			return
		}

		existing, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog post", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var post models.BlogPost
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&post); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		post.ID = blogPostID
		post.DateAdded = existing.DateAdded
		now := time.Now()
		post.DateEdited = &now
		post.Length = len(post.Content)

		// A tags array in the payload replaces the existing set
		tags := post.Tags
		post.Tags = nil

		if err := h.blogPostRepo.Update(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog post", err))
			return
		}

		if tags != nil {
			if err := h.blogTagRepo.DeleteByBlogPostID(blogPostID); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("replace blog tags", "blog tags", err))
				return
			}
			for i := range tags {
				tags[i].BlogPostID = blogPostID
				if tags[i].ID == uuid.Nil {
					tags[i].ID = uuid.New()
				}
				if err := h.blogTagRepo.Add(&tags[i]); err != nil {
					h.logger.Error().Err(err).Str("tag_value", tags[i].Value).Msg("Failed to create blog tag")
				}
			}
		}

		updatedPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated blog post", "blog post", err))
			return
		}

		response := BlogPostWithTags{
			BlogPost: *updatedPost,
			Tags:     updatedPost.Tags,
		}

		h.responder.WriteJSON(w, response)
	}
}

// deleteBlogPost deletes a blog post by ID
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, ok := h.parseBlogPostID(w, r)
		if !ok {
			return
		}

		if _, err := h.blogPostRepo.FindByID(blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog post", err))
			return
		}

		if err := h.blogPostRepo.Delete(blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}

func (h blogPostHandler) parseBlogPostID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	blogPostIDStr := chi.URLParam(r, "blogPostID")
	if blogPostIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing blogPostID"))
		return uuid.Nil, false
	}

	blogPostID, err := uuid.Parse(blogPostIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid blogPostID"))
		return uuid.Nil, false
	}
	return blogPostID, true
}
