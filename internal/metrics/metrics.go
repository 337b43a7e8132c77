package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the CargoBox collectors.
	Registry = prometheus.NewRegistry()

	remoteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cargobox",
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Requests sent to the remote logistics API.",
		},
		[]string{"method", "status"},
	)

	probes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cargobox",
			Subsystem: "availability",
			Name:      "probes_total",
			Help:      "Liveness probes by result.",
		},
		[]string{"result"},
	)

	fallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cargobox",
			Subsystem: "storage",
			Name:      "local_fallbacks_total",
			Help:      "Remote failures that switched an entity store to local storage.",
		},
		[]string{"kind", "op"},
	)

	swallowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cargobox",
			Subsystem: "storage",
			Name:      "empty_list_results_total",
			Help:      "List calls answered with an empty result because the remote was slow or failing.",
		},
		[]string{"kind", "reason"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		remoteRequests,
		probes,
		fallbacks,
		swallowed,
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRemoteRequest counts a remote call; status 0 means the request never got a response.
func RecordRemoteRequest(method string, status int) {
	s := "error"
	if status > 0 {
		s = strconv.Itoa(status)
	}
	remoteRequests.WithLabelValues(method, s).Inc()
}

func RecordProbe(ok bool) {
	if ok {
		probes.WithLabelValues("up").Inc()
		return
	}
	probes.WithLabelValues("down").Inc()
}

func RecordFallback(kind, op string) {
	fallbacks.WithLabelValues(kind, op).Inc()
}

func RecordEmptyList(kind, reason string) {
	swallowed.WithLabelValues(kind, reason).Inc()
}
