package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	QuestionnairesCreated   prometheus.Counter
	QuestionnairesPublished prometheus.Counter
	QuestionnaireUsages     prometheus.Counter
	InterviewsScheduled     prometheus.Counter
	InterviewsCompleted     prometheus.Counter
	ProducteursCreated      prometheus.Counter
	ProducteursVerified     prometheus.Counter
	CacheHits               *prometheus.CounterVec
	CacheMisses             *prometheus.CounterVec
	RequestDuration         *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		QuestionnairesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrisurvey_questionnaires_created_total",
			Help: "Total number of questionnaires created",
		}),
		QuestionnairesPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrisurvey_questionnaires_published_total",
			Help: "Total number of questionnaires published",
		}),
		QuestionnaireUsages: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrisurvey_questionnaire_usages_total",
			Help: "Total number of recorded questionnaire usages",
		}),
		InterviewsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrisurvey_interviews_scheduled_total",
			Help: "Total number of interviews scheduled",
		}),
		InterviewsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrisurvey_interviews_completed_total",
			Help: "Total number of interviews completed",
		}),
		ProducteursCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrisurvey_producteurs_created_total",
			Help: "Total number of producer profiles created",
		}),
		ProducteursVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agrisurvey_producteurs_verified_total",
			Help: "Total number of producer profiles verified",
		}),
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agrisurvey_cache_hits_total",
			Help: "Cache hits by entity",
		}, []string{"entity"}),
		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agrisurvey_cache_misses_total",
			Help: "Cache misses by entity",
		}, []string{"entity"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agrisurvey_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}
