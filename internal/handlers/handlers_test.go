package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahsinahmed/photoclass-gobackend/internal/auth"
	"github.com/tahsinahmed/photoclass-gobackend/internal/middleware"
	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

type noRoles struct{}

func (noRoles) RoleByEmail(context.Context, string) (string, error) { return "", nil }

// authedRequest runs the handler behind the real Authenticate middleware with
// a token for the given email, so identity-scope checks see genuine claims.
func authedRequest(t *testing.T, h http.HandlerFunc, method, target, body, email string) *httptest.ResponseRecorder {
	t.Helper()

	tokens := auth.NewTokenService([]byte("test-secret"))
	guard := middleware.NewGuard(tokens, noRoles{})
	token, err := tokens.Issue(email, "")
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guard.Authenticate(h).ServeHTTP(rec, req)
	return rec
}

func TestIssueToken_RoundTrip(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService([]byte("test-secret"))
	h := NewUserHandler(nil, tokens)

	req := httptest.NewRequest(http.MethodPost, "/jwt",
		strings.NewReader(`{"email":"student@example.com","name":"Student"}`))
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["jwtToken"])

	claims, err := tokens.Verify(body["jwtToken"])
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email)
}

func TestIssueToken_Rejects(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(nil, auth.NewTokenService([]byte("test-secret")))

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: `{`},
		{name: "missing email", body: `{"name":"No Email"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.IssueToken(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetCart_EmailMismatchForbidden(t *testing.T) {
	t.Parallel()

	h := NewCartHandler(nil)
	rec := authedRequest(t, h.GetCart, http.MethodGet, "/cart?email=other@example.com", "", "me@example.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
}

func TestGetCart_NoEmailReturnsEmptyList(t *testing.T) {
	t.Parallel()

	h := NewCartHandler(nil)
	rec := authedRequest(t, h.GetCart, http.MethodGet, "/cart", "", "me@example.com")

	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Empty(t, items)
}

func TestAddToCart_OtherUsersEmailForbidden(t *testing.T) {
	t.Parallel()

	h := NewCartHandler(nil)
	body := `{"userEmail":"other@example.com","classId":"652f1f77bcf86cd799439011"}`
	rec := authedRequest(t, h.AddToCart, http.MethodPost, "/cart/class", body, "me@example.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCompletePayment_EmailMismatchForbidden(t *testing.T) {
	t.Parallel()

	h := NewPaymentHandler(nil, nil)
	body := `{"email":"other@example.com","classId":"652f1f77bcf86cd799439011","cartId":"652f1f77bcf86cd799439012","amount":49.99}`
	rec := authedRequest(t, h.CompletePayment, http.MethodPost, "/payments", body, "me@example.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetPayments_EmailMismatchForbidden(t *testing.T) {
	t.Parallel()

	h := NewPaymentHandler(nil, nil)
	rec := authedRequest(t, h.GetPayments, http.MethodGet, "/payments?email=other@example.com", "", "me@example.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetEnrolledClasses_EmailMismatchForbidden(t *testing.T) {
	t.Parallel()

	h := NewPaymentHandler(nil, nil)
	rec := authedRequest(t, h.GetEnrolledClasses, http.MethodGet, "/enroll/classes?email=other@example.com", "", "me@example.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetClass_MalformedIDIsBadRequest(t *testing.T) {
	t.Parallel()

	// The id is rejected before the catalog is touched, so no service is
	// needed.
	h := NewClassHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/class/not-a-hex", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-hex"})
	rec := httptest.NewRecorder()
	h.GetClass(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
}

func TestCompletePayment_MalformedClassIDIsBadRequest(t *testing.T) {
	t.Parallel()

	h := NewPaymentHandler(&services.PaymentService{}, nil)
	body := `{"email":"me@example.com","classId":"not-a-hex","cartId":"652f1f77bcf86cd799439012","amount":10}`
	rec := authedRequest(t, h.CompletePayment, http.MethodPost, "/payments", body, "me@example.com")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateIntent_RejectsNonPositivePrice(t *testing.T) {
	t.Parallel()

	h := NewPaymentHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price":0}`))
	rec := httptest.NewRecorder()
	h.CreateIntent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
