package handlers

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/metrics"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

const (
	erpExportPath     = "/api/public/export"
	erpProxyTimeout   = 30 * time.Second
	nonJSONPreviewLen = 200
)

// erpProxyHandler relays browser calls to the ERP's public export API so the ERP never has to
// be exposed or configured for CORS.
type erpProxyHandler struct {
	client  *resty.Client
	baseURL string
}

func newERPProxyHandler(erpBaseURL string) *erpProxyHandler {
	return &erpProxyHandler{
		client:  resty.New().SetTimeout(erpProxyTimeout),
		baseURL: strings.TrimRight(erpBaseURL, "/") + erpExportPath,
	}
}

// registerERPProxyRoutes registers the passthrough under /api/erp.
func registerERPProxyRoutes(rg *gin.RouterGroup, erpBaseURL, erpAPIKey string) {
	h := newERPProxyHandler(erpBaseURL)

	erp := rg.Group("/erp", middleware.UpstreamAuthorization(erpAPIKey))
	{
		erp.GET("/*path", h.proxy)
		erp.POST("/*path", h.proxy)
		erp.PUT("/*path", h.proxy)
	}
}

// proxy godoc
// @Summary Proxy a request to the ERP
// @Description Forwards the request to the ERP public export API with query string and body preserved.
// @Description JSON answers are relayed with the upstream status; upstream errors carry the target URL.
// @Tags erp
// @Accept json
// @Produce json
// @Param path path string true "Path below /api/public/export"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse "Failed to fetch from ERP"
// @Failure 502 {object} ErrorResponse "Backend returned non-JSON response"
// @Router /api/erp/{path} [get]
// @Router /api/erp/{path} [post]
// @Router /api/erp/{path} [put]
func (h *erpProxyHandler) proxy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	path, ok := erpTargetPath(c.Param("path"))
	if !ok {
		logger.Warn("Rejected ERP proxy path", slog.String("path", c.Param("path")))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid ERP path"})
		return
	}
	target := h.baseURL + "/" + path
	if raw := c.Request.URL.RawQuery; raw != "" {
		target += "?" + raw
	}
	logger = logger.With(slog.String("target", target), slog.String("method", c.Request.Method))

	req := h.client.R().
		SetContext(c.Request.Context()).
		SetHeader("Accept", "application/json")
	if auth := middleware.GetUpstreamAuthorization(c); auth != "" {
		req.SetHeader("Authorization", auth)
	}
	if c.Request.Method != http.MethodGet {
		body, err := c.GetRawData()
		if err != nil {
			logger.Warn("Failed to read proxy request body", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}
		contentType := c.ContentType()
		if contentType == "" {
			contentType = "application/json"
		}
		req.SetHeader("Content-Type", contentType).SetBody(body)
	}

	resp, err := req.Execute(c.Request.Method, target)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("erp_proxy", metrics.StatusClass(0)).Inc()
		logger.Error("ERP proxy transport failure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch from ERP"})
		return
	}

	status := resp.StatusCode()
	metrics.UpstreamRequests.WithLabelValues("erp_proxy", metrics.StatusClass(status)).Inc()
	body := resp.Body()

	if !isJSONContentType(resp.Header().Get("Content-Type")) {
		preview := string(body)
		if len(preview) > nonJSONPreviewLen {
			preview = preview[:nonJSONPreviewLen]
		}
		logger.Error("ERP returned non-JSON response",
			slog.Int("status", status),
			slog.String("content_type", resp.Header().Get("Content-Type")),
			slog.String("body_preview", preview),
		)
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
		c.JSON(status, ErrorResponse{Error: "Backend returned non-JSON response. Is the backend running?"})
		return
	}

	if status >= http.StatusBadRequest {
		logger.Warn("ERP returned an error", slog.Int("status", status))
		body = annotateUpstreamError(body, target)
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// annotateUpstreamError appends " (Target: <url>)" to a string error field. Bodies without one
// are relayed untouched.
func annotateUpstreamError(body []byte, target string) []byte {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return body
	}
	msg, ok := payload["error"].(string)
	if !ok {
		return body
	}
	payload["error"] = msg + " (Target: " + target + ")"
	annotated, err := json.Marshal(payload)
	if err != nil {
		return body
	}
	return annotated
}

// erpTargetPath re-escapes each segment of the decoded wildcard path. Dot segments are refused
// so a request cannot climb out of the export API.
func erpTargetPath(raw string) (string, bool) {
	segments := strings.Split(strings.Trim(raw, "/"), "/")
	escaped := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "":
			continue
		case ".", "..":
			return "", false
		}
		escaped = append(escaped, url.PathEscape(seg))
	}
	return strings.Join(escaped, "/"), true
}
