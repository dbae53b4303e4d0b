package payment

import "context"

// CreateIntentParams describes a destination charge: the customer pays
// AmountCents, the platform keeps ApplicationFeeCents, and the rest is
// transferred to the provider's connected account.
type CreateIntentParams struct {
	AmountCents         int64
	Currency            string
	ApplicationFeeCents int64
	TransferDestination string
	Metadata            map[string]string
}

// Intent is the gateway-side view of a payment attempt.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string // gateway vocabulary, e.g. "succeeded", "canceled"
}

// Gateway abstracts the payment processor so settlement logic can be tested
// without network calls.
type Gateway interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
