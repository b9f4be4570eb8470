package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docloc/stats"
)

func TestObserve(t *testing.T) {
	c := NewCollector()
	c.Observe("locales/en/trainer.po", stats.Stats{
		Language:     "en",
		Translated:   3,
		Untranslated: 1,
		Fuzzy:        1,
		Obsolete:     2,
	})

	lv := []string{"locales/en/trainer.po", "en"}
	assert.Equal(t, 3.0, testutil.ToFloat64(c.translated.WithLabelValues(lv...)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.untranslated.WithLabelValues(lv...)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fuzzy.WithLabelValues(lv...)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.obsolete.WithLabelValues(lv...)))
	assert.Equal(t, 0.75, testutil.ToFloat64(c.completion.WithLabelValues(lv...)))
}

func TestObserveOverwritesPreviousValues(t *testing.T) {
	c := NewCollector()
	c.Observe("a.po", stats.Stats{Language: "en", Translated: 1, Untranslated: 3})
	c.Observe("a.po", stats.Stats{Language: "en", Translated: 4})

	assert.Equal(t, 4.0, testutil.ToFloat64(c.translated.WithLabelValues("a.po", "en")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.untranslated.WithLabelValues("a.po", "en")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.completion.WithLabelValues("a.po", "en")))
}

func TestForget(t *testing.T) {
	c := NewCollector()
	c.Observe("a.po", stats.Stats{Language: "en", Translated: 1})
	c.Observe("b.po", stats.Stats{Language: "ja", Translated: 2})

	c.Forget("a.po")

	assert.Equal(t, 1, testutil.CollectAndCount(c.translated), "only the surviving catalog remains")
	assert.Equal(t, 2.0, testutil.ToFloat64(c.translated.WithLabelValues("b.po", "ja")))
}

func TestHandlerServesMetrics(t *testing.T) {
	c := NewCollector()
	c.Observe("locales/en/trainer.po", stats.Stats{Language: "en", Translated: 2, Untranslated: 2})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "docloc_catalog_translated_entries"), body)
	assert.True(t, strings.Contains(body, `language="en"`), body)
}
