package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics counts the business events the shop team watches.
type StorefrontMetrics struct {
	ordersPlaced    prometheus.Counter
	checkoutsOpened prometheus.Counter
	couponApplied   *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront counters on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders finalized through checkout.",
	})
	checkoutsOpened := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_opened_total",
		Help: "Checkout drafts started from the cart.",
	})
	couponApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_attempts_total",
		Help: "Coupon application attempts, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(ordersPlaced, checkoutsOpened, couponApplied)
	return &StorefrontMetrics{
		ordersPlaced:    ordersPlaced,
		checkoutsOpened: checkoutsOpened,
		couponApplied:   couponApplied,
	}
}

// IncOrderPlaced counts one finalized order.
func (s *StorefrontMetrics) IncOrderPlaced() {
	if s == nil || s.ordersPlaced == nil {
		return
	}
	s.ordersPlaced.Inc()
}

// IncCheckoutOpened counts one checkout draft being started.
func (s *StorefrontMetrics) IncCheckoutOpened() {
	if s == nil || s.checkoutsOpened == nil {
		return
	}
	s.checkoutsOpened.Inc()
}

// IncCouponAttempt counts a coupon apply attempt with the given outcome
// ("accepted" or "rejected").
func (s *StorefrontMetrics) IncCouponAttempt(outcome string) {
	if s == nil || s.couponApplied == nil {
		return
	}
	s.couponApplied.WithLabelValues(normalizeLabel(outcome)).Inc()
}
