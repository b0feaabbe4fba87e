// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラー層とサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordDogRegistered()
	RecordAdoption()
	RecordRemoval()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
	dogsRegistered prometheus.Counter
	adoptions      prometheus.Counter
	removals       prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hogoken_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hogoken_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		dogsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hogoken_dogs_registered_total",
			Help: "登録された犬の記録の合計数",
		}),
		adoptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hogoken_adoptions_total",
			Help: "成立した里親決定の合計数",
		}),
		removals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hogoken_removals_total",
			Help: "取り下げられた犬の記録の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.dogsRegistered,
		c.adoptions,
		c.removals,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordDogRegistered は犬の記録の登録を記録する。
func (c *Collector) RecordDogRegistered() {
	c.dogsRegistered.Inc()
}

// RecordAdoption は里親決定の成立を記録する。
func (c *Collector) RecordAdoption() {
	c.adoptions.Inc()
}

// RecordRemoval は記録の取り下げを記録する。
func (c *Collector) RecordRemoval() {
	c.removals.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
