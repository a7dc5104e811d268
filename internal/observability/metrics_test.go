package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestInstrumentRecordsStatus(t *testing.T) {
	handler := Instrument("DELETE /api/admin/tags/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/admin/tags/abc", nil))

	body := scrape(t)
	assert.Contains(t, body, `umerfilms_http_requests_total{method="DELETE",route="DELETE /api/admin/tags/{id}",status="404"} 1`)
	assert.Contains(t, body, `umerfilms_http_request_duration_seconds_count{method="DELETE",route="DELETE /api/admin/tags/{id}"} 1`)
}

func TestInstrumentDefaultsToOK(t *testing.T) {
	handler := Instrument("GET /api/tags", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tags", nil))

	assert.Equal(t, "[]", rec.Body.String())
	assert.Contains(t, scrape(t), `umerfilms_http_requests_total{method="GET",route="GET /api/tags",status="200"}`)
}

func TestDomainCounters(t *testing.T) {
	BlobDeleteFailures.WithLabelValues("gallery").Inc()
	ContactMessages.WithLabelValues("sent").Inc()

	body := scrape(t)
	assert.Contains(t, body, `umerfilms_media_delete_failures_total{source="gallery"}`)
	assert.Contains(t, body, `umerfilms_contact_messages_total{status="sent"}`)
}
