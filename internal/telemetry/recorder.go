package telemetry

import "time"

// Observer matches api.Recorder without importing it.
type Observer interface {
	ObserveCall(op string, status int, failure string, d time.Duration)
}

// Tee fans each observation out to every non-nil observer.
type Tee []Observer

// ObserveCall forwards to every observer in order.
func (t Tee) ObserveCall(op string, status int, failure string, d time.Duration) {
	for _, o := range t {
		if o != nil {
			o.ObserveCall(op, status, failure, d)
		}
	}
}
