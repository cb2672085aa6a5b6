package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StripeService creates payment intents against the Stripe REST API. The
// base URL is configurable so tests can point it at a fake.
type StripeService struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeService(secretKey, baseURL string) *StripeService {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeService{
		secretKey: secretKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateIntent asks Stripe for a card payment intent over the given price in
// USD and returns the client secret the browser finishes the charge with.
// Price arrives in major units and Stripe wants cents. Not retried; a
// provider failure surfaces as ErrProvider.
func (s *StripeService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := int64(math.Round(price * 100))

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", "usd")
	form.Add("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/payment_intents",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Payment intent request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("Payment intent failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var intent struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if intent.ClientSecret == "" {
		return "", fmt.Errorf("%w: no client secret in response", ErrProvider)
	}

	return intent.ClientSecret, nil
}
