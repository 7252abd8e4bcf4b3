package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutAttemptsTotal counts finished checkout attempts by outcome.
	CheckoutAttemptsTotal *prometheus.CounterVec
	// GatewayCallsTotal counts calls to the external inventory and payment systems.
	GatewayCallsTotal *prometheus.CounterVec
	// PaymentCompensationsTotal counts compensating payment cancellations.
	PaymentCompensationsTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_attempts_total",
			Help:      "Count of finished checkout attempts by outcome.",
		}, []string{"result"})
		GatewayCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "Count of external gateway calls by system, operation and result.",
		}, []string{"system", "operation", "result"})
		PaymentCompensationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_compensations_total",
			Help:      "Number of compensating payment cancellations issued.",
		})

		mustRegisterCollector(reg, CheckoutAttemptsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutAttemptsTotal = v
			}
		})
		mustRegisterCollector(reg, GatewayCallsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				GatewayCallsTotal = v
			}
		})
		mustRegisterCollector(reg, PaymentCompensationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				PaymentCompensationsTotal = v
			}
		})
	})
}

// RecordCheckoutOutcome increments the checkout outcome counter when metrics
// are registered. Callers outside the composed binary (tests, tools) can hit
// this without registration.
func RecordCheckoutOutcome(result string) {
	if CheckoutAttemptsTotal == nil {
		return
	}
	CheckoutAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordGatewayCall increments the gateway call counter when registered.
func RecordGatewayCall(system, operation, result string) {
	if GatewayCallsTotal == nil {
		return
	}
	GatewayCallsTotal.WithLabelValues(system, operation, result).Inc()
}

// RecordPaymentCompensation increments the compensation counter when registered.
func RecordPaymentCompensation() {
	if PaymentCompensationsTotal == nil {
		return
	}
	PaymentCompensationsTotal.Inc()
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
