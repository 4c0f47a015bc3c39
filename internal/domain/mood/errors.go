package mood

import "errors"

// Sentinel kinds shared by classifier tiers. Tiers wrap these so the cascade
// can classify a demotion with errors.Is.
var (
	ErrInputEmpty           = errors.New("input empty")
	ErrModelUnavailable     = errors.New("model unavailable")
	ErrTransientTierFailure = errors.New("transient tier failure")
	ErrUncertainResult      = errors.New("uncertain result")
)

// Kind returns a short, stable label for err suitable for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInputEmpty):
		return "input_empty"
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ErrTransientTierFailure):
		return "transient"
	case errors.Is(err, ErrUncertainResult):
		return "uncertain"
	default:
		return "unknown"
	}
}
