package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/cache"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/similarity"
)

const defaultRelatedLimit = 3

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectRepo    *database.ProjectRepo
	projectTagRepo *database.ProjectTagRepo
	relatedCache   *cache.RelatedCache
}

func newProjectHandler(projectRepo *database.ProjectRepo, projectTagRepo *database.ProjectTagRepo, relatedCache *cache.RelatedCache) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectRepo:    projectRepo,
		projectTagRepo: projectTagRepo,
		relatedCache:   relatedCache,
	}
}

// ProjectWithTags represents a project with its tags
type ProjectWithTags struct {
	Project models.Project      `json:"project"`
	Tags    []models.ProjectTag `json:"tags"`
}

// ProjectCollectionWithTags represents multiple projects with their tags
type ProjectCollectionWithTags struct {
	Projects []ProjectWithTags `json:"projects"`
	Total    int               `json:"total,omitempty"`
}

// RelatedProject is one entry in a related-projects listing.
type RelatedProject struct {
	Project models.Project   `json:"project"`
	Score   int              `json:"score"`
	Label   similarity.Label `json:"label"`
}

// getAllProjects retrieves all projects with their tags
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		var projectsWithTags []ProjectWithTags
		for _, project := range projects {
			projectsWithTags = append(projectsWithTags, ProjectWithTags{
				Project: *project,
				Tags:    project.Tags,
			})
		}

		response := ProjectCollectionWithTags{
			Projects: projectsWithTags,
			Total:    len(projectsWithTags),
		}

		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves a specific project by ID with its tags
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		response := ProjectWithTags{
			Project: *project,
			Tags:    project.Tags,
		}

		h.responder.WriteJSON(w, response)
	}
}

// getRelatedProjects ranks the enabled catalog by relatedness to the
// requested project. Rankings are cached in Redis; scores and labels are
// recomputed per response since they are cheap.
func (h projectHandler) getRelatedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		limit := defaultRelatedLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 10 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be an integer between 1 and 10"))
				return
			}
			limit = parsed
		}

		catalog, err := h.projectRepo.FindEnabled()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		byID := make(map[uuid.UUID]*models.Project, len(catalog))
		for _, p := range catalog {
			byID[p.ID] = p
		}

		reference, found := byID[projectID]
		if !found {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		var related []*models.Project
		if ids, hit := h.relatedCache.Get(r.Context(), projectID); hit {
			for _, id := range ids {
				if p, exists := byID[id]; exists && len(related) < limit {
					related = append(related, p)
				}
			}
		}

		if len(related) < limit {
			related = similarity.Related(reference, catalog, limit)

			ids := make([]uuid.UUID, len(related))
			for i, p := range related {
				ids[i] = p.ID
			}
			h.relatedCache.Set(r.Context(), projectID, ids)
		}

		response := make([]RelatedProject, 0, len(related))
		for _, p := range related {
			score := similarity.Score(reference, p)
			response = append(response, RelatedProject{
				Project: *p,
				Score:   score,
				Label:   similarity.LabelFor(score),
			})
		}

		h.responder.WriteJSON(w, response)
	}
}

// createProject creates a new project
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var project models.Project
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&project); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if project.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
			return
		}

		// Extract tags before creating the project
		tags := project.Tags
		project.Tags = nil

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		if len(tags) > 0 {
			for i := range tags {
				tags[i].ProjectID = project.ID
				if tags[i].ID == uuid.Nil {
					tags[i].ID = uuid.New()
				}
				if err := h.projectTagRepo.Add(&tags[i]); err != nil {
					h.logger.Error().Err(err).Str("tag_value", tags[i].Value).Msg("Failed to create project tag")
					// Continue creating other tags even if one fails
				}
			}
		}

		createdProject, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		response := ProjectWithTags{
			Project: *createdProject,
			Tags:    createdProject.Tags,
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, response)
	}
}

// updateProject updates an existing project
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var project models.Project
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&project); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		// Ensure ID matches
		project.ID = projectID

		// A tags array in the payload replaces the existing set
		tags := project.Tags
		project.Tags = nil

		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		if tags != nil {
			if err := h.projectTagRepo.DeleteByProjectID(projectID); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("replace project tags", "project tags", err))
				return
			}
			for i := range tags {
				tags[i].ProjectID = projectID
				if tags[i].ID == uuid.Nil {
					tags[i].ID = uuid.New()
				}
				if err := h.projectTagRepo.Add(&tags[i]); err != nil {
					h.logger.Error().Err(err).Str("tag_value", tags[i].Value).Msg("Failed to create project tag")
				}
			}
		}

		h.relatedCache.Invalidate(r.Context(), projectID)

		updatedProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		response := ProjectWithTags{
			Project: *updatedProject,
			Tags:    updatedProject.Tags,
		}

		h.responder.WriteJSON(w, response)
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.relatedCache.Invalidate(r.Context(), projectID)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

func (h projectHandler) parseProjectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
		return uuid.Nil, false
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return uuid.Nil, false
	}
	return projectID, true
}
