// Package billing wraps the payment provider behind a small interface so
// handlers and tests never talk to the provider's SDK directly.
package billing

import (
	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/price"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Plan is the simplified subscription-plan shape exposed to clients, shaped
// from the provider's price objects.
type Plan struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
	Interval string `json:"interval"`
}

// Provider is the payment-platform surface this service consumes
type Provider interface {
	// ListPlans returns the active recurring prices shaped as plans
	ListPlans() ([]Plan, error)
	// CreateCheckoutSession starts a subscription checkout and returns the
	// hosted page URL
	CreateCheckoutSession(customerEmail, priceID, successURL, cancelURL string) (string, error)
	// CreatePortalSession returns the hosted billing-portal URL for a customer
	CreatePortalSession(customerID, returnURL string) (string, error)
	// VerifyWebhook checks the event signature against the signing secret
	// before any processing; unverifiable payloads are rejected outright
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

type stripeProvider struct {
	webhookSecret string
}

// NewStripeProvider configures the Stripe SDK and returns a Provider bound to
// the given keys.
func NewStripeProvider(apiKey, webhookSecret string) Provider {
	stripe.Key = apiKey
	return &stripeProvider{webhookSecret: webhookSecret}
}

func (p *stripeProvider) ListPlans() ([]Plan, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
		Type:   stripe.String(string(stripe.PriceTypeRecurring)),
	}

	var plans []Plan
	iter := price.List(params)
	for iter.Next() {
		pr := iter.Price()
		plan := Plan{
			ID:       pr.ID,
			Amount:   pr.UnitAmount,
			Currency: string(pr.Currency),
			Display:  FormatAmount(pr.UnitAmount, string(pr.Currency)),
		}
		if pr.Recurring != nil {
			plan.Interval = string(pr.Recurring.Interval)
		}
		plans = append(plans, plan)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

func (p *stripeProvider) CreateCheckoutSession(customerEmail, priceID, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(customerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

func (p *stripeProvider) CreatePortalSession(customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}

	session, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

func (p *stripeProvider) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
}
