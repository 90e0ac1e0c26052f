// Package metrics provides a minimal instrumentation interface with a no-op
// default and a Prometheus-backed implementation.
package metrics

import "time"

// Recorder defines the metrics surface used by the engine and the server.
type Recorder interface {
	IncOpTotal(op string, success bool)
	ObserveOpSeconds(op string, success bool, seconds float64)
}

type noopRecorder struct{}

func (noopRecorder) IncOpTotal(string, bool)                {}
func (noopRecorder) ObserveOpSeconds(string, bool, float64) {}

// Noop returns a recorder that drops everything.
func Noop() Recorder {
	return noopRecorder{}
}

// TimeOp starts timing op and returns the function that records it.
// A nil recorder records nothing.
func TimeOp(r Recorder, op string) func(success bool) {
	if r == nil {
		r = Noop()
	}
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		r.IncOpTotal(op, success)
		r.ObserveOpSeconds(op, success, dur)
	}
}
