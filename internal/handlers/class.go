package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tahsinahmed/photoclass-gobackend/internal/middleware"
	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

type ClassHandler struct {
	classes *services.ClassService
}

func NewClassHandler(classes *services.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// GetAllClasses returns every class regardless of status. Admin view.
func (h *ClassHandler) GetAllClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.List(r.Context(), services.ClassFilter{})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// GetInstructorClasses returns the instructor's own classes, newest first.
// Self-scoped on top of the instructor role gate.
func (h *ClassHandler) GetInstructorClasses(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if !requireSelf(w, r, email) {
		return
	}

	classes, err := h.classes.ByInstructor(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// GetApprovedClasses is the public catalog listing.
func (h *ClassHandler) GetApprovedClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.List(r.Context(), services.ClassFilter{Status: models.StatusApprove})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// GetTopClasses returns the six most-enrolled approved classes.
func (h *ClassHandler) GetTopClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.List(r.Context(), services.ClassFilter{
		Status: models.StatusApprove,
		SortBy: services.SortByEnroll,
		Limit:  services.TopLimit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (h *ClassHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	class, err := h.classes.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// CreateClass inserts a new class for the calling instructor. The instructor
// email on the document is taken from the token, not the body, so nobody
// files classes under somebody else's name.
func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var class models.Class
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		class.InstructorEmail = claims.Email
	}
	class.Status = models.StatusPending
	class.Enroll = 0

	id, err := h.classes.Create(r.Context(), &class)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateClass merges the posted fields into the class.
func (h *ClassHandler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.classes.Update(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ApproveClass moves a pending class to approve. Idempotent.
func (h *ClassHandler) ApproveClass(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusApprove)
}

// DenyClass moves a pending class to deny. Idempotent.
func (h *ClassHandler) DenyClass(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusDeny)
}

func (h *ClassHandler) setStatus(w http.ResponseWriter, r *http.Request, status models.ClassStatus) {
	result, err := h.classes.SetStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ClassHandler) SetFeedback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.classes.SetFeedback(r.Context(), mux.Vars(r)["id"], body.Feedback)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ClassHandler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	result, err := h.classes.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetTopInstructors serves the enrollment ranking aggregation.
func (h *ClassHandler) GetTopInstructors(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.classes.TopInstructors(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranks)
}
