package llm

import (
	"context"
	"errors"
	"strings"
)

// Client abstracts text-generation providers. Implementations make exactly
// one outbound call per Complete invocation and keep no state between calls.
type Client interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Options selects the model and sampling behavior for one completion.
type Options struct {
	// Model is the provider-specific model identifier. Required.
	Model string
	// Temperature is the sampling temperature sent to the provider.
	Temperature float32
	// MaxTokens bounds the output length. Zero means provider default.
	MaxTokens int
	// ForceJSON asks the provider for strict JSON output where supported.
	ForceJSON bool
	// System is an optional system message prepended to the prompt.
	System string
}

// ErrEmptyCompletion is returned when the provider answers without content.
var ErrEmptyCompletion = errors.New("empty completion content")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient stands in when no provider is configured.
type PlaceholderClient struct{}

func (PlaceholderClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	_ = ctx
	_ = prompt
	_ = opts
	return "", ErrNotConfigured
}

// Tier selects the cost/quality axis for generation.
type Tier string

const (
	TierEconomy Tier = "economy"
	TierPremium Tier = "premium"
)

// ParseTier normalizes a tier string, defaulting to economy.
func ParseTier(raw string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(TierEconomy):
		return TierEconomy, nil
	case string(TierPremium):
		return TierPremium, nil
	default:
		return "", errors.New("mode must be economy or premium")
	}
}

var _ Client = PlaceholderClient{}
