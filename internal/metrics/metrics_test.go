package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordDogRegistered()
	c.RecordDogRegistered()
	c.RecordAdoption()
	c.RecordRemoval()
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	if got := testutil.ToFloat64(c.dogsRegistered); got != 2 {
		t.Errorf("dogsRegistered = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.adoptions); got != 1 {
		t.Errorf("adoptions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.removals); got != 1 {
		t.Errorf("removals = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("httpStatus{200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("404")); got != 1 {
		t.Errorf("httpStatus{404} = %v, want 1", got)
	}
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordDogRegistered()
	c.RecordRequestLatency(5 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "hogoken_dogs_registered_total 1") {
		t.Errorf("登録カウンタが公開されていない: %s", body)
	}
	if !strings.Contains(body, "hogoken_request_latency_seconds") {
		t.Errorf("レイテンシヒストグラムが公開されていない: %s", body)
	}
}

// recordingCollector はミドルウェアからの記録呼び出しを捕捉するモック。
type recordingCollector struct {
	statuses  []int
	latencies []time.Duration
}

func (rc *recordingCollector) RecordHTTPStatus(code int) { rc.statuses = append(rc.statuses, code) }
func (rc *recordingCollector) RecordRequestLatency(d time.Duration) {
	rc.latencies = append(rc.latencies, d)
}
func (rc *recordingCollector) RecordDogRegistered() {}
func (rc *recordingCollector) RecordAdoption()      {}
func (rc *recordingCollector) RecordRemoval()       {}

func TestMiddleware_RecordsStatusAndLatency(t *testing.T) {
	rc := &recordingCollector{}
	handler := NewMiddleware(rc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/dogs", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(rc.statuses) != 1 || rc.statuses[0] != http.StatusCreated {
		t.Errorf("statuses = %v, want [201]", rc.statuses)
	}
	if len(rc.latencies) != 1 {
		t.Errorf("latencies length = %d, want 1", len(rc.latencies))
	}
}

// WriteHeaderを呼ばないハンドラーは200として記録される。
func TestMiddleware_ImplicitOK(t *testing.T) {
	rc := &recordingCollector{}
	handler := NewMiddleware(rc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(rc.statuses) != 1 || rc.statuses[0] != http.StatusOK {
		t.Errorf("statuses = %v, want [200]", rc.statuses)
	}
}
