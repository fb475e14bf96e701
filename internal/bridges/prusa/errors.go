package prusa

import "errors"

// Domain errors for the Prusa bridge package.
var (
	// ErrPrinterUnreachable is returned when the status request cannot be
	// completed: connection refused, timeout, or a non-2xx response.
	ErrPrinterUnreachable = errors.New("prusa: printer unreachable")

	// ErrMalformedResponse is returned when the status body cannot be parsed
	// or lacks a required field.
	ErrMalformedResponse = errors.New("prusa: malformed status response")

	// ErrMissingField is wrapped by ErrMalformedResponse and names the
	// absent field.
	ErrMissingField = errors.New("prusa: required field missing")
)

// Error kinds attached to log entries under the "kind" key.
const (
	KindPrinterUnreachable = "PrinterUnreachable"
	KindMalformedResponse  = "MalformedResponse"
	KindBrokerUnreachable  = "BrokerUnreachable"
	KindPublishFailed      = "PublishFailed"
	KindUnknown            = "Unknown"
)

// errorKind maps a fetch error to its log kind.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrPrinterUnreachable):
		return KindPrinterUnreachable
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	default:
		return KindUnknown
	}
}
