package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	opsTotal   *prom.CounterVec
	opsSeconds *prom.HistogramVec
}

func (p *promRecorder) IncOpTotal(op string, success bool) {
	p.opsTotal.WithLabelValues(op, strconv.FormatBool(success)).Inc()
}

func (p *promRecorder) ObserveOpSeconds(op string, success bool, seconds float64) {
	p.opsSeconds.WithLabelValues(op, strconv.FormatBool(success)).Observe(seconds)
}

// NewPrometheus registers the engine collectors on reg and returns a
// recorder feeding them.
func NewPrometheus(reg prom.Registerer) (Recorder, error) {
	p := &promRecorder{
		opsTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "remindmap",
			Subsystem: "engine",
			Name:      "ops_total",
			Help:      "Total number of engine operations",
		}, []string{"op", "success"}),
		opsSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "remindmap",
			Subsystem: "engine",
			Name:      "op_seconds",
			Help:      "Engine operation duration in seconds",
			Buckets:   prom.DefBuckets,
		}, []string{"op", "success"}),
	}

	for _, c := range []prom.Collector{p.opsTotal, p.opsSeconds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Handler exposes the collectors gathered by g.
func Handler(g prom.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
