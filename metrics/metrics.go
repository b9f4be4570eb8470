// Package metrics exposes translation-progress gauges for watched
// catalogs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/docloc/stats"
)

// Collector tracks per-catalog translation progress.
type Collector struct {
	registry *prometheus.Registry

	translated   *prometheus.GaugeVec
	untranslated *prometheus.GaugeVec
	fuzzy        *prometheus.GaugeVec
	obsolete     *prometheus.GaugeVec
	completion   *prometheus.GaugeVec
}

var labels = []string{"path", "language"}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		translated: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "docloc_catalog_translated_entries",
			Help: "Active entries with a translation.",
		}, labels),
		untranslated: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "docloc_catalog_untranslated_entries",
			Help: "Active entries without a translation.",
		}, labels),
		fuzzy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "docloc_catalog_fuzzy_entries",
			Help: "Translated entries flagged for review.",
		}, labels),
		obsolete: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "docloc_catalog_obsolete_entries",
			Help: "Entries retained but no longer referenced upstream.",
		}, labels),
		completion: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "docloc_catalog_completion_ratio",
			Help: "Translated share of active entries, 0-1.",
		}, labels),
	}
	c.registry.MustRegister(c.translated, c.untranslated, c.fuzzy, c.obsolete, c.completion)
	return c
}

// Observe records the stats for one catalog.
func (c *Collector) Observe(path string, st stats.Stats) {
	lv := prometheus.Labels{"path": path, "language": st.Language}
	c.translated.With(lv).Set(float64(st.Translated))
	c.untranslated.With(lv).Set(float64(st.Untranslated))
	c.fuzzy.With(lv).Set(float64(st.Fuzzy))
	c.obsolete.With(lv).Set(float64(st.Obsolete))
	c.completion.With(lv).Set(st.Percent() / 100)
}

// Forget drops the series for a deleted catalog.
func (c *Collector) Forget(path string) {
	lv := prometheus.Labels{"path": path}
	c.translated.DeletePartialMatch(lv)
	c.untranslated.DeletePartialMatch(lv)
	c.fuzzy.DeletePartialMatch(lv)
	c.obsolete.DeletePartialMatch(lv)
	c.completion.DeletePartialMatch(lv)
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
