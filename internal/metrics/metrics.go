package metrics

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	OrdersPlaced    prometheus.Counter
	OrdersRejected  prometheus.Counter
	StockRejections prometheus.Counter
	ReviewsCreated  prometheus.Counter
	RequestDuration prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	placed := prometheus.NewCounter(prometheus.CounterOpts{Name: "retail_orders_placed_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "retail_orders_rejected_total"})
	stockRejections := prometheus.NewCounter(prometheus.CounterOpts{Name: "retail_stock_rejections_total"})
	reviewsCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "retail_reviews_created_total"})
	requestDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "retail_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(placed, rejected, stockRejections, reviewsCreated, requestDuration)
	return &Registry{
		reg:             r,
		OrdersPlaced:    placed,
		OrdersRejected:  rejected,
		StockRejections: stockRejections,
		ReviewsCreated:  reviewsCreated,
		RequestDuration: requestDuration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Middleware records request latency for every route.
func (r *Registry) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		r.RequestDuration.Observe(time.Since(start).Seconds())
		return err
	}
}
