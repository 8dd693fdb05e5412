// internal/app/features/clerkwebhook/verifier.go
package clerkwebhook

import (
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// Verifier checks a webhook delivery's signature against its headers.
type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

// svixVerifier is the production Verifier. The identity provider signs
// deliveries with the Svix scheme.
type svixVerifier struct {
	wh *svix.Webhook
}

// NewSvixVerifier builds a Verifier for the given signing secret.
func NewSvixVerifier(secret string) (Verifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &svixVerifier{wh: wh}, nil
}

func (v *svixVerifier) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
