package dispatch

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrConfiguration     = errors.New("RUNANYWHERE_API_KEY not set in environment")
	ErrIntegration       = errors.New("no usable task client could be loaded")
	ErrUnsupportedClient = errors.New("client has no supported API (runTask/execute/call)")
)

type ProviderFailure struct {
	Provider string
	Err      error
}

// IntegrationError reports that every provider failed. It matches ErrIntegration.
type IntegrationError struct {
	Failures []ProviderFailure
}

func (e *IntegrationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrIntegration.Error())
	for i, f := range e.Failures {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f.Provider)
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}

func (e *IntegrationError) Is(target error) bool {
	return target == ErrIntegration
}
