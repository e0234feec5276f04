package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

type assetsHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   AssetLinker
}

func newAssetsHandler(service AssetLinker) assetsHandler {
	logger := log.With().Str("handlerName", "assetsHandler").Logger()

	return assetsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// AssetURLResponse carries a presigned, time-limited download URL.
type AssetURLResponse struct {
	URL string `json:"url"`
}

func (h assetsHandler) resumeURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.service == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("asset downloads are not configured"))
			return
		}

		url, err := h.service.ResumeURL(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, AssetURLResponse{URL: url})
	}
}

func (h assetsHandler) galleryURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.service == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("asset downloads are not configured"))
			return
		}

		key := chi.URLParam(r, "key")

		url, err := h.service.GalleryURL(r.Context(), key)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, AssetURLResponse{URL: url})
	}
}
