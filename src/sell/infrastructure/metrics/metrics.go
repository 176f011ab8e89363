package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sell",
		Name:      "upstream_request_duration_seconds",
		Help:      "Duración de las llamadas al back-office por endpoint y estado",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	referenceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sell",
		Name:      "reference_fetch_total",
		Help:      "Cargas de datos de referencia por dataset y origen (cache, upstream, error)",
	}, []string{"dataset", "source"})

	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sell",
		Name:      "submissions_total",
		Help:      "Envíos de ventas por resultado",
	}, []string{"result"})

	activeDrafts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sell",
		Name:      "active_drafts",
		Help:      "Borradores de venta abiertos",
	})
)

// ObserveUpstream registra una llamada al back-office. status 0 = sin respuesta.
func ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	label := "no_response"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(endpoint, label).Observe(elapsed.Seconds())
}

// ReferenceFetch cuenta una carga de dataset
func ReferenceFetch(dataset, source string) {
	referenceFetches.WithLabelValues(dataset, source).Inc()
}

// Submission cuenta un envío (succeeded, failed, rejected, replayed)
func Submission(result string) {
	submissions.WithLabelValues(result).Inc()
}

// SetActiveDrafts publica la cantidad de borradores abiertos
func SetActiveDrafts(n int) {
	activeDrafts.Set(float64(n))
}
