// Счётчики Prometheus. Регистрируются один раз при старте,
// отдаются по /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Успешные поиски отделений, по источнику данных
	OfficeLookups *prometheus.CounterVec
	// Отказы источников (по ним видно, что интеграция легла)
	SourceFailures *prometheus.CounterVec
	// События вебхука ЮKassa, по типу события
	PaymentEvents *prometheus.CounterVec

	OrdersCreated prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OfficeLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nfc_store_office_lookups_total",
			Help: "Поиски отделений, разрезанные по источнику данных.",
		}, []string{"source"}),
		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nfc_store_office_source_failures_total",
			Help: "Отказы источников отделений.",
		}, []string{"source"}),
		PaymentEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nfc_store_payment_events_total",
			Help: "События платёжного вебхука.",
		}, []string{"event"}),
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "nfc_store_orders_created_total",
			Help: "Оформленные заказы.",
		}),
	}
}
