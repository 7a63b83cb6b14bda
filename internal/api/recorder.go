package api

import "time"

// Recorder observes every completed backend call.
type Recorder interface {
	// ObserveCall is invoked once per call with the operation name, the HTTP
	// status (0 when none arrived), the failure kind name, and the duration.
	ObserveCall(op string, status int, failure string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCall(string, int, string, time.Duration) {}
