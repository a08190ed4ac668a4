package yahoo

import "fmt"

// ProviderError is a structured error reported inside the provider's own
// response envelope (unknown symbol, unavailable module, ...). The message
// callers see is the provider's description text.
type ProviderError struct {
	Endpoint    string
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return fmt.Sprintf("%s: provider error %s", e.Endpoint, e.Code)
}

// ShapeError reports a response that parsed as JSON but is missing a
// required part of the envelope, e.g. an empty result sequence or a module
// that was requested but not returned.
type ShapeError struct {
	Endpoint string
	Detail   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %s", e.Endpoint, e.Detail)
}
