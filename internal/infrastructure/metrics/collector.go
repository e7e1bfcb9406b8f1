package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/leads-api/internal/application/ports"
)

var _ ports.LeadMetrics = (*Collector)(nil)

// Collector agrupa métricas HTTP y contadores del ciclo de vida del lead.
type Collector struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	stageTransitions    *prometheus.CounterVec
	evaluations         *prometheus.CounterVec
	promotions          *prometheus.CounterVec
}

// NewCollector registra las métricas en reg. Con reg nil se usa un registro nuevo.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Collector{
		gatherer: reg,
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		stageTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_stage_transitions_total",
				Help: "Total number of committed lead stage transitions",
			},
			[]string{"from", "to"},
		),
		evaluations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_evaluations_total",
				Help: "Total number of lead evaluations by recommendation",
			},
			[]string{"recommendation"},
		),
		promotions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_promotions_total",
				Help: "Total number of promotion attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveRequest registra una petición HTTP ya respondida.
func (c *Collector) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (c *Collector) StageChanged(from, to string) {
	c.stageTransitions.WithLabelValues(from, to).Inc()
}

func (c *Collector) LeadEvaluated(recommendation string) {
	c.evaluations.WithLabelValues(recommendation).Inc()
}

func (c *Collector) PromotionFinished(outcome string) {
	c.promotions.WithLabelValues(outcome).Inc()
}

// Handler expone las métricas en formato de texto de Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
