package convert

import (
	"fmt"
	"strings"
)

// Dispatcher routes text to the provider for a direction and applies the
// vocabulary overlay.
type Dispatcher struct {
	providers Providers
}

// NewDispatcher wraps providers.
func NewDispatcher(providers Providers) *Dispatcher {
	return &Dispatcher{providers: providers}
}

// Convert runs only the base conversion.
func (d *Dispatcher) Convert(text string, dir Direction) (string, error) {
	provider, err := d.providers.For(dir)
	if err != nil {
		return "", err
	}
	out, err := provider.Convert(text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransform, err)
	}
	return out, nil
}

// Apply converts text and then applies the overlay when enabled.
//
// For s2t each pair replaces convert_s2t(Source) with Target; for t2s each
// pair replaces convert_t2s(Target) with Source. The returned text is always
// usable: on provider failure it is "Conversion error: <cause>" and the
// error is returned alongside for logging.
func (d *Dispatcher) Apply(text string, dir Direction, vocab *Vocabulary, enabled bool) (string, error) {
	out, err := d.apply(text, dir, vocab, enabled)
	if err != nil {
		return errorText(err), err
	}
	return out, nil
}

func (d *Dispatcher) apply(text string, dir Direction, vocab *Vocabulary, enabled bool) (string, error) {
	provider, err := d.providers.For(dir)
	if err != nil {
		return "", err
	}
	out, err := provider.Convert(text)
	if err != nil {
		return "", &transformError{cause: err}
	}
	if !enabled || vocab.Len() == 0 {
		return out, nil
	}
	for _, pair := range vocab.Pairs() {
		search, replacement := pair.Source, pair.Target
		if dir == T2S {
			search, replacement = pair.Target, pair.Source
		}
		key, err := provider.Convert(search)
		if err != nil {
			return "", &transformError{cause: err}
		}
		if key == "" {
			continue
		}
		out = strings.ReplaceAll(out, key, replacement)
	}
	return out, nil
}

// Name converts a short name such as a file base name. The overlay is not
// applied.
func (d *Dispatcher) Name(name string, dir Direction) (string, error) {
	return d.Convert(name, dir)
}

type transformError struct {
	cause error
}

func (e *transformError) Error() string { return e.cause.Error() }

func (e *transformError) Unwrap() []error { return []error{ErrTransform, e.cause} }

func errorText(err error) string {
	return "Conversion error: " + err.Error()
}
