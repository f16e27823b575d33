package observability

import (
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/yungbote/gymcoach/internal/platform/envutil"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	gatewayCalls   *CounterVec
	gatewayLatency *HistogramVec

	sessionsLive *Gauge
	chatMessages *CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Current returns the process metrics, or nil when Init was not called or
// metrics are disabled. Every method is nil-safe.
func Current() *Metrics {
	return instance
}

func Init() *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
	})
	return instance
}

// New builds an unregistered set, for tests and embedding.
func New() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("gymcoach_api_requests_total", "Session API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"gymcoach_api_request_duration_seconds",
			"Session API latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		),
		apiInflight: NewGauge("gymcoach_api_inflight_requests", "In-flight session API requests."),
		gatewayCalls: NewCounterVec("gymcoach_gateway_calls_total", "Backend calls by op and outcome kind.", []string{"op", "kind"}),
		gatewayLatency: NewHistogramVec(
			"gymcoach_gateway_call_duration_seconds",
			"Backend call latency in seconds by op.",
			[]string{"op"},
			[]float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		),
		sessionsLive: NewGauge("gymcoach_sessions_live", "Sessions currently held in memory."),
		chatMessages: NewCounterVec("gymcoach_chat_messages_total", "Chat messages appended by author.", []string{"author"}),
	}
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveGateway records one backend call. kind is empty on success.
func (m *Metrics) ObserveGateway(op, kind string, dur time.Duration) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "ok"
	}
	m.gatewayCalls.Inc(op, kind)
	m.gatewayLatency.Observe(dur.Seconds(), op)
}

func (m *Metrics) GatewayCalls(op, kind string) float64 {
	if m == nil {
		return 0
	}
	return m.gatewayCalls.Value(op, kind)
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsLive.Set(float64(n))
}

func (m *Metrics) IncChatMessage(isUser bool) {
	if m == nil {
		return
	}
	author := "coach"
	if isUser {
		author = "user"
	}
	m.chatMessages.Inc(author)
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, wr := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.gatewayCalls, m.gatewayLatency,
		m.sessionsLive, m.chatMessages,
	} {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}
