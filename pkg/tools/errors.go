package tools

import (
	"errors"
	"fmt"

	"github.com/urmzd/lifx-mcp/pkg/lifx"
)

// ErrUnknownTool indicates a tool name outside the catalogue
var ErrUnknownTool = errors.New("unknown tool")

// Kind classifies the outcome of an invocation.
type Kind string

const (
	KindOK            Kind = "ok"
	KindConfiguration Kind = "configuration"
	KindUpstream      Kind = "upstream"
	KindTransport     Kind = "transport"
	KindInvocation    Kind = "invocation"
	KindValidation    Kind = "validation"
)

// InvocationError is returned for a tool name the dispatcher does not know.
type InvocationError struct {
	Name string
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

func (e *InvocationError) Unwrap() error {
	return ErrUnknownTool
}

// ValidationError means the arguments were rejected locally and no
// request was sent.
type ValidationError struct {
	Tool string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Classify maps an error from Invoke's pipeline to its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindOK
	}

	var (
		cfgErr *lifx.ConfigError
		apiErr *lifx.APIError
		trErr  *lifx.TransportError
		invErr *InvocationError
		valErr *ValidationError
	)
	switch {
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &apiErr):
		return KindUpstream
	case errors.As(err, &trErr):
		return KindTransport
	case errors.As(err, &invErr):
		return KindInvocation
	case errors.As(err, &valErr):
		return KindValidation
	default:
		// Unreadable payloads and the like come from the upstream side
		return KindUpstream
	}
}
