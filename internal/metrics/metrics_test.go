package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorders_IncrementCounters(t *testing.T) {
	before := testutil.ToFloat64(fallbacks.WithLabelValues("recipients", "update"))
	RecordFallback("recipients", "update")
	require.Equal(t, before+1, testutil.ToFloat64(fallbacks.WithLabelValues("recipients", "update")))

	beforeErr := testutil.ToFloat64(remoteRequests.WithLabelValues("GET", "error"))
	RecordRemoteRequest("GET", 0)
	require.Equal(t, beforeErr+1, testutil.ToFloat64(remoteRequests.WithLabelValues("GET", "error")))

	beforeDown := testutil.ToFloat64(probes.WithLabelValues("down"))
	RecordProbe(false)
	require.Equal(t, beforeDown+1, testutil.ToFloat64(probes.WithLabelValues("down")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	RecordEmptyList("orders", "timeout")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "cargobox_storage_empty_list_results_total")
}
