package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeService_CreateIntent(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotAmount, gotCurrency, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotMethod = r.PostForm.Get("payment_method_types[]")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc"}`))
	}))
	defer srv.Close()

	svc := NewStripeService("sk_test_key", srv.URL)
	secret, err := svc.CreateIntent(context.Background(), 49.99)
	require.NoError(t, err)

	assert.Equal(t, "pi_123_secret_abc", secret)
	assert.Equal(t, "/v1/payment_intents", gotPath)
	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	// 49.99 dollars become 4999 cents.
	assert.Equal(t, "4999", gotAmount)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, "card", gotMethod)
}

func TestStripeService_CreateIntent_RoundsFloatNoise(t *testing.T) {
	t.Parallel()

	var gotAmount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostForm.Get("amount")
		w.Write([]byte(`{"id":"pi_1","client_secret":"s"}`))
	}))
	defer srv.Close()

	svc := NewStripeService("sk", srv.URL)
	// 9.999 * 100 is 999.9000...01 in float64; the cent amount must round,
	// not truncate.
	_, err := svc.CreateIntent(context.Background(), 9.999)
	require.NoError(t, err)
	assert.Equal(t, "1000", gotAmount)
}

func TestStripeService_CreateIntent_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	svc := NewStripeService("sk", srv.URL)
	_, err := svc.CreateIntent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestStripeService_CreateIntent_MissingClientSecret(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"pi_1"}`))
	}))
	defer srv.Close()

	svc := NewStripeService("sk", srv.URL)
	_, err := svc.CreateIntent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestStripeService_CreateIntent_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := NewStripeService("sk", srv.URL)
	_, err := svc.CreateIntent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrProvider)
}
