// Package metrics provides Prometheus metrics for the quiz API and generation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage labels.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageLLM     = "llm"
	StagePersist = "persist"
)

// Generation result labels.
const (
	ResultGenerated = "generated"
	ResultCached    = "cached"
	ResultFailed    = "failed"
)

// Cache lookup labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikiquiz_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wikiquiz_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Pipeline metrics
var (
	// QuizGenerationsTotal counts generate requests by outcome: generated, cached or failed.
	QuizGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikiquiz_quiz_generations_total",
			Help: "Total number of quiz generation requests by result",
		},
		[]string{"result"},
	)

	// QuizGenerationErrors counts failed generations by error code.
	QuizGenerationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikiquiz_quiz_generation_errors_total",
			Help: "Total number of failed quiz generations by error code",
		},
		[]string{"code"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wikiquiz_pipeline_stage_duration_seconds",
			Help:    "Time spent in each quiz generation stage",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		},
		[]string{"stage"},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikiquiz_llm_calls_total",
			Help: "Total number of model calls by status",
		},
		[]string{"status"},
	)

	// QuestionsValidated counts model questions that were accepted or rejected by validation.
	QuestionsValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikiquiz_questions_validated_total",
			Help: "Total number of generated questions by validation outcome",
		},
		[]string{"outcome"},
	)

	ArticleContentLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wikiquiz_article_content_length_chars",
			Help:    "Length of extracted article body text in characters",
			Buckets: []float64{100, 200, 500, 1000, 2000, 4000, 6000, 8000},
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikiquiz_cache_lookups_total",
			Help: "Total number of quiz cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordQuizGeneration(result string) {
	QuizGenerationsTotal.WithLabelValues(result).Inc()
}

// RecordQuizGenerationError counts a failed generation under both the result and code breakdowns.
func RecordQuizGenerationError(code string) {
	QuizGenerationsTotal.WithLabelValues(ResultFailed).Inc()
	QuizGenerationErrors.WithLabelValues(code).Inc()
}

func RecordStageDuration(stage string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordLLMCall records one model call and its latency.
func RecordLLMCall(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	LLMCallsTotal.WithLabelValues(status).Inc()
	RecordStageDuration(StageLLM, duration)
}

func RecordQuestionsValidated(accepted, rejected int) {
	if accepted > 0 {
		QuestionsValidated.WithLabelValues("accepted").Add(float64(accepted))
	}
	if rejected > 0 {
		QuestionsValidated.WithLabelValues("rejected").Add(float64(rejected))
	}
}

func RecordArticleContentLength(chars int) {
	ArticleContentLength.Observe(float64(chars))
}

func RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}
