package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

const testWebhookSecret = "whsec_test_secret"

// signedWebhookPayload builds a payload and the signature header the provider
// would attach to it.
func signedWebhookPayload(t *testing.T, secret string) ([]byte, string) {
	t.Helper()

	payload := []byte(fmt.Sprintf(
		`{"id": "evt_1", "object": "event", "api_version": %q, "type": "customer.created", "data": {"object": {"id": "cus_1", "email": "owner@example.com"}}}`,
		stripe.APIVersion))

	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	header := fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
	return payload, header
}

func TestVerifyWebhookValidSignature(t *testing.T) {
	provider := NewStripeProvider("sk_test_key", testWebhookSecret)

	payload, header := signedWebhookPayload(t, testWebhookSecret)
	event, err := provider.VerifyWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "customer.created", string(event.Type))
	assert.NotEmpty(t, event.Data.Raw)
}

func TestVerifyWebhookRejectsBadSignature(t *testing.T) {
	provider := NewStripeProvider("sk_test_key", testWebhookSecret)

	payload, header := signedWebhookPayload(t, "whsec_wrong_secret")
	_, err := provider.VerifyWebhook(payload, header)
	assert.Error(t, err)
}

func TestVerifyWebhookRejectsTamperedPayload(t *testing.T) {
	provider := NewStripeProvider("sk_test_key", testWebhookSecret)

	payload, header := signedWebhookPayload(t, testWebhookSecret)
	tampered := append([]byte("{"), payload[1:]...)
	tampered[len(tampered)-2] = ' '
	_, err := provider.VerifyWebhook(tampered, header)
	assert.Error(t, err)
}

func TestVerifyWebhookRejectsMissingHeader(t *testing.T) {
	provider := NewStripeProvider("sk_test_key", testWebhookSecret)

	payload, _ := signedWebhookPayload(t, testWebhookSecret)
	_, err := provider.VerifyWebhook(payload, "")
	assert.Error(t, err)
}
