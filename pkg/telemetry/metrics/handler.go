package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the collector's registry for scraping at
// telemetry.metrics.path. Scrapes are themselves counted in
// promhttp_metric_handler_requests_total. A collector that fails to gather
// is logged and skipped so the remaining series are still served.
func (c *Collector) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(c.registry,
		promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
			ErrorLog:          scrapeLog{},
			ErrorHandling:     promhttp.ContinueOnError,
			EnableOpenMetrics: true,
		}),
	)
}

// scrapeLog routes promhttp errors to slog.
type scrapeLog struct{}

func (scrapeLog) Println(v ...any) {
	slog.Warn("metrics scrape error", "error", fmt.Sprint(v...))
}
