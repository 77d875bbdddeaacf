package verify

import (
	"context"

	"github.com/factgate/factgate/internal/model"
)

// Oracle is the external verification boundary. It accepts one claim and
// returns a verdict; everything above treats it as an opaque function.
// Implementations do not retry: the retry executor wraps the call.
type Oracle interface {
	// Name returns the provider name
	Name() string

	// Verify checks a single claim against external sources
	Verify(ctx context.Context, claim model.Claim) (*model.VerificationResult, error)
}
