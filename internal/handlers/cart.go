package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart lists the caller's pending selections. No email in the query gets
// an empty list, matching the frontend's pre-sign-in call.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusOK, []models.CartItem{})
		return
	}
	if !requireSelf(w, r, email) {
		return
	}

	items, err := h.carts.ByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) GetCartItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.carts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// AddToCart stores a class selection. Scoped to the caller's own email.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !requireSelf(w, r, item.UserEmail) {
		return
	}

	id, err := h.carts.Add(r.Context(), &item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CartHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	result, err := h.carts.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
