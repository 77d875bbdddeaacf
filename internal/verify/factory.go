package verify

import (
	"fmt"
	"strings"

	"github.com/factgate/factgate/internal/model"
)

// NewOracle creates an oracle from configuration. An empty provider returns
// nil: verification is disabled and every claim resolves unknown.
func NewOracle(config model.OracleConfig) (Oracle, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIOracle(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: openai)", config.Provider)
	}
}
