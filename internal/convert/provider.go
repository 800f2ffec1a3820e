package convert

import (
	"errors"
	"fmt"

	"github.com/longbridgeapp/opencc"
)

// ErrTransform marks a failure reported by a conversion provider.
var ErrTransform = errors.New("conversion failed")

// Provider converts text in one fixed direction.
type Provider interface {
	Convert(text string) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(string) (string, error)

// Convert calls f.
func (f ProviderFunc) Convert(text string) (string, error) { return f(text) }

// Providers holds one provider per direction.
type Providers map[Direction]Provider

// For returns the provider registered for dir.
func (p Providers) For(dir Direction) (Provider, error) {
	provider, ok := p[dir]
	if !ok || provider == nil {
		return nil, fmt.Errorf("%w: no provider for direction %q", ErrTransform, dir)
	}
	return provider, nil
}

// NewOpenCC loads the OpenCC dictionaries for both directions.
func NewOpenCC() (Providers, error) {
	providers := make(Providers, 2)
	for _, dir := range []Direction{S2T, T2S} {
		cc, err := opencc.New(string(dir))
		if err != nil {
			return nil, fmt.Errorf("load opencc %s dictionary: %w", dir, err)
		}
		providers[dir] = cc
	}
	return providers, nil
}
