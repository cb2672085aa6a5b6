package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
	stripe   *services.StripeService
}

func NewPaymentHandler(payments *services.PaymentService, stripe *services.StripeService) *PaymentHandler {
	return &PaymentHandler{payments: payments, stripe: stripe}
}

// CreateIntent exchanges a price for a provider client secret the browser
// uses to finish the charge.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Price <= 0 {
		writeError(w, http.StatusBadRequest, "price must be positive")
		return
	}

	clientSecret, err := h.stripe.CreateIntent(r.Context(), body.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// CompletePayment runs the enrollment transition for a charge the client
// finished. The ledger entry is keyed by the caller's own email.
func (h *PaymentHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !requireSelf(w, r, payment.Email) {
		return
	}
	if payment.ClassID == "" || payment.CartID == "" {
		writeError(w, http.StatusBadRequest, "classId and cartId are required")
		return
	}

	result, err := h.payments.CompletePayment(r.Context(), &payment)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetPayments lists the caller's ledger entries, newest first.
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	payments, err := h.payments.ByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// GetEnrolledClasses resolves the caller's payments to class records.
func (h *PaymentHandler) GetEnrolledClasses(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	classes, err := h.payments.EnrolledClasses(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}
