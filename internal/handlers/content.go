package handlers

import (
	"net/http"

	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

type ContentHandler struct {
	content *services.ContentService
}

func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) GetSliders(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.content.Sliders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sliders)
}

func (h *ContentHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.content.Reviews(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
