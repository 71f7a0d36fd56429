package llm

import (
	"context"
	"errors"
)

// FallbackProvider tries a prioritized list of backends in order.
// The first backend serves every request; a later backend is consulted
// only when the earlier one fails with something other than a context
// error. Callers see either a success or the combined failure, never
// a partial result.
type FallbackProvider struct {
	backends []Provider
}

// WithFallback builds a fallback chain over the given backends, in
// priority order. At least one backend is required.
func WithFallback(backends ...Provider) *FallbackProvider {
	return &FallbackProvider{backends: backends}
}

func (f *FallbackProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if len(f.backends) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	var errs []error
	for _, b := range f.backends {
		resp, err := b.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		// A dead context dooms every remaining backend too.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		errs = append(errs, err)
	}

	return nil, &ErrAllBackendsFailed{Errs: errs}
}

// ModelID returns the primary backend's model ID.
func (f *FallbackProvider) ModelID() string {
	if len(f.backends) == 0 {
		return "none"
	}
	return f.backends[0].ModelID()
}

// Backends returns the chain's model IDs in priority order.
func (f *FallbackProvider) Backends() []string {
	ids := make([]string, len(f.backends))
	for i, b := range f.backends {
		ids[i] = b.ModelID()
	}
	return ids
}
