package observability

import (
	"errors"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
)

// ObserveStore times fn under op and counts its error, if any, by class.
// A nil *Prom just runs fn.
func (p *Prom) ObserveStore(op string, fn func() error) error {
	if p == nil {
		return fn()
	}

	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil {
		status = "error"
		p.StoreErrors.WithLabelValues(op, classifyStoreErr(err)).Inc()
	}

	p.StoreOpDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())

	return err
}

func classifyStoreErr(err error) string {
	switch {
	case errors.Is(err, user.ErrValidation):
		return "validation"
	case errors.Is(err, user.ErrNotFound):
		return "not_found"
	default:
		return "unknown"
	}
}
