package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// Metrics counts component and transaction activity across every attached host.
type Metrics struct {
	events       *prometheus.CounterVec
	transactions *prometheus.CounterVec
	loads        *prometheus.CounterVec
	components   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelier_component_events_total",
				Help: "Total number of component change notifications",
			},
			[]string{"event"},
		),
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelier_transactions_total",
				Help: "Total number of closed designer transactions",
			},
			[]string{"outcome"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atelier_loads_total",
				Help: "Total number of completed document loads",
			},
			[]string{"result"},
		),
		components: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atelier_components",
			Help: "Number of components currently sited in attached hosts",
		}),
	}
	if reg != nil {
		for _, c := range m.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Collectors returns the underlying Prometheus collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.events, m.transactions, m.loads, m.components}
}

// Attach subscribes the metrics to host. The returned function detaches them.
func (m *Metrics) Attach(host ports.DesignerHost) (detach func()) {
	count := func(e *domain.ComponentEvent) {
		m.events.WithLabelValues(string(e.Type)).Inc()
	}
	cancelChanges := host.Subscribe(domain.ChangeHooks{
		OnComponentAdding: count,
		OnComponentAdded: func(e *domain.ComponentEvent) {
			count(e)
			m.components.Inc()
		},
		OnComponentRemoving: count,
		OnComponentRemoved: func(e *domain.ComponentEvent) {
			count(e)
			m.components.Dec()
		},
		OnComponentChanged: func(*domain.ComponentChangedEvent) {
			m.events.WithLabelValues(string(domain.EventComponentChanged)).Inc()
		},
		OnComponentRename: func(*domain.ComponentRenameEvent) {
			m.events.WithLabelValues(string(domain.EventComponentRename)).Inc()
		},
	})
	cancelHost := host.SubscribeHost(domain.HostHooks{
		OnTransactionClosed: func(e *domain.TransactionCloseEvent) {
			outcome := "canceled"
			if e.Committed {
				outcome = "committed"
			}
			m.transactions.WithLabelValues(outcome).Inc()
		},
		OnLoadComplete: func(err error) {
			result := "ok"
			if err != nil {
				result = "error"
			}
			m.loads.WithLabelValues(result).Inc()
		},
	})
	return func() {
		cancelChanges()
		cancelHost()
	}
}
