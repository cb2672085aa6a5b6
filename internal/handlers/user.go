package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tahsinahmed/photoclass-gobackend/internal/auth"
	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

type UserHandler struct {
	users  *services.UserService
	tokens *auth.TokenService
}

func NewUserHandler(users *services.UserService, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// IssueToken signs the posted identity into a one-hour session token.
func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var identity struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if identity.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.tokens.Issue(identity.Email, identity.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"jwtToken": token})
}

// CreateUser is the first-sign-in path: insert unless the email exists.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserInfo models.User `json:"userInfo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserInfo.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	created, id, err := h.users.CreateIfAbsent(r.Context(), &body.UserInfo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"message": "user already exists"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.users.Instructors(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instructors)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MakeInstructor grants the instructor role.
func (h *UserHandler) MakeInstructor(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleInstructor)
}

// MakeAdmin grants the admin role.
func (h *UserHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleAdmin)
}

func (h *UserHandler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	result, err := h.users.SetRole(r.Context(), mux.Vars(r)["id"], role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetRoleFlags reports which role the caller holds, in the nested flag shape
// the frontend has always consumed. Self-scoped: the path email must match
// the token. An unknown user simply has every flag false.
func (h *UserHandler) GetRoleFlags(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if !requireSelf(w, r, email) {
		return
	}

	role := ""
	user, err := h.users.ByEmail(r.Context(), email)
	if err == nil {
		role = user.Role
	} else if !errors.Is(err, services.ErrNotFound) {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"admin":      map[string]bool{"admin": role == models.RoleAdmin},
		"student":    map[string]bool{"student": role == models.RoleStudent},
		"instructor": map[string]bool{"instructor": role == models.RoleInstructor},
	})
}
