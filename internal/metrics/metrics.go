package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all CampusConnect metrics.
const namespace = "campusconnect"

// Registry is the private Prometheus registry for all metrics. A private
// registry keeps third-party library metrics from leaking into /metrics.
var Registry = prometheus.NewRegistry()

// AppInfo exposes version information as labels (value is always 1).
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "environment"},
)

// RegisterSessionGauge exposes the live session count through the given
// callback, typically the session manager's Len.
func RegisterSessionGauge(count func() int) {
	Registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Current number of active sessions",
		},
		func() float64 { return float64(count()) },
	))
}

// RegistrationsCreatedTotal counts successful event sign-ups.
var RegistrationsCreatedTotal = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_created_total",
		Help:      "Total number of event registrations created",
	},
)

// Init registers the runtime collectors and sets the app info gauge. Call
// once at startup.
func Init(version, environment string) {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	AppInfo.WithLabelValues(version, environment).Set(1)
}
