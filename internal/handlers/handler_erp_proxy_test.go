package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamCall struct {
	method string
	uri    string
	auth   string
	body   string
}

// erpStub answers every request with status, contentType and body, recording what it received.
func erpStub(t *testing.T, status int, contentType, body string) (*httptest.Server, *upstreamCall) {
	t.Helper()
	call := &upstreamCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		*call = upstreamCall{method: r.Method, uri: r.URL.RequestURI(), auth: r.Header.Get("Authorization"), body: string(raw)}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, call
}

func proxyServer(erpURL, apiKey string) http.Handler {
	cfg := testConfig()
	cfg.ERPBaseURL = erpURL
	cfg.ERPAPIKey = apiKey
	return newTestServer(cfg, &portssvc.ServiceContainer{
		Catalog:      new(MockCatalogService),
		Customer:     new(MockCustomerService),
		ExchangeRate: newFixedRates("150"),
		TenantConfig: &stubTenants{},
	})
}

func serveProxy(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Host = "localhost:3000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestERPProxy_RelaysJSONWithPathQueryAndKey(t *testing.T) {
	upstream, call := erpStub(t, http.StatusOK, "application/json; charset=utf-8", `{"data":[{"id":"v1"}]}`)
	h := proxyServer(upstream.URL, "server-key")

	w := serveProxy(h, http.MethodGet, "/api/erp/vehicles?subdomain=acme&limit=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"id":"v1"}]}`, w.Body.String())
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/api/public/export/vehicles?subdomain=acme&limit=2", call.uri)
	assert.Equal(t, "Bearer server-key", call.auth)
}

func TestERPProxy_ForwardsBodyOnPost(t *testing.T) {
	upstream, call := erpStub(t, http.StatusCreated, "application/json", `{"id":"b-1"}`)
	h := proxyServer(upstream.URL, "")

	w := serveProxy(h, http.MethodPost, "/api/erp/bids", `{"vehicleId":"v1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.MethodPost, call.method)
	assert.JSONEq(t, `{"vehicleId":"v1"}`, call.body)
	assert.Empty(t, call.auth)
}

func TestERPProxy_AnnotatesUpstreamErrors(t *testing.T) {
	upstream, _ := erpStub(t, http.StatusNotFound, "application/json", `{"error":"Vehicle not found"}`)
	h := proxyServer(upstream.URL, "")

	w := serveProxy(h, http.MethodPut, "/api/erp/vehicles/v9", `{}`)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Vehicle not found (Target: `+upstream.URL+`/api/public/export/vehicles/v9)"}`, w.Body.String())
}

func TestERPProxy_NonJSON(t *testing.T) {
	tests := []struct {
		name     string
		upstream int
		want     int
	}{
		{"ok becomes bad gateway", http.StatusOK, http.StatusBadGateway},
		{"error status kept", http.StatusServiceUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			upstream, _ := erpStub(t, tc.upstream, "text/html", "<html>Not the ERP</html>")
			h := proxyServer(upstream.URL, "")

			w := serveProxy(h, http.MethodGet, "/api/erp/vehicles", "")

			assert.Equal(t, tc.want, w.Code)
			assert.JSONEq(t, `{"error":"Backend returned non-JSON response. Is the backend running?"}`, w.Body.String())
		})
	}
}

func TestERPProxy_TransportFailure(t *testing.T) {
	upstream, _ := erpStub(t, http.StatusOK, "application/json", `{}`)
	url := upstream.URL
	upstream.Close()
	h := proxyServer(url, "")

	w := serveProxy(h, http.MethodGet, "/api/erp/vehicles", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch from ERP"}`, w.Body.String())
}

func TestERPProxy_EscapesPathSegments(t *testing.T) {
	upstream, call := erpStub(t, http.StatusOK, "application/json", `{}`)
	h := proxyServer(upstream.URL, "")

	w := serveProxy(h, http.MethodGet, "/api/erp/vehicles/a%3Fb%20c?limit=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/public/export/vehicles/a%3Fb%20c?limit=1", call.uri)
}

func TestERPProxy_RejectsDotSegments(t *testing.T) {
	upstream, call := erpStub(t, http.StatusOK, "application/json", `{}`)
	h := proxyServer(upstream.URL, "")

	for _, target := range []string{"/api/erp/vehicles/%2E%2E/admin", "/api/erp/./config"} {
		w := serveProxy(h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	assert.Empty(t, call.method, "nothing reaches the ERP")
}
