// Package hostrouter maps the inbound Host header to a tenant addressing mode and
// rewrites custom-domain requests so the tenant slug becomes the first path segment.
//
// Platform domains (local development and the shared hosting suffixes) already carry
// the slug in the path: localhost:3000/demo/vehicles. Custom domains are rewritten:
// acme.example.com/vehicles?x=1 is served as /acme.example.com/vehicles?x=1.
package hostrouter

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/metrics"
)

// Classification is the tenant addressing mode derived from a host.
type Classification int

const (
	PlatformDomain Classification = iota
	CustomDomain
)

func (c Classification) String() string {
	if c == CustomDomain {
		return "custom-domain"
	}
	return "platform-domain"
}

// DefaultReservedPrefixes are never rewritten: internal API routes, framework and static assets,
// and operational endpoints.
var DefaultReservedPrefixes = []string{
	"/api/",
	"/_next/",
	"/_static/",
	"/_vercel",
	"/static/",
	"/swagger/",
	"/metrics",
	"/health",
}

// rootFilePattern matches a first segment like "favicon.ico" or "robots.txt".
var rootFilePattern = regexp.MustCompile(`^/[\w-]+\.\w+`)

// Config configures a Router.
type Config struct {
	// PlatformSuffixes are shared hosting domains that use path-based tenancy, e.g. ".vercel.app".
	PlatformSuffixes []string
	// DefaultHost is assumed when the request carries no Host header.
	DefaultHost      string
	ReservedPrefixes []string
	Logger           *slog.Logger
}

// Router classifies hosts and rewrites request paths. It holds no per-request state.
type Router struct {
	platformSuffixes []string
	defaultHost      string
	reserved         []string
	logger           *slog.Logger
}

// New creates a Router, filling unset fields with defaults.
func New(cfg Config) *Router {
	r := &Router{
		defaultHost: cfg.DefaultHost,
		reserved:    cfg.ReservedPrefixes,
		logger:      cfg.Logger,
	}
	if r.defaultHost == "" {
		r.defaultHost = "localhost:3000"
	}
	if len(r.reserved) == 0 {
		r.reserved = DefaultReservedPrefixes
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	for _, s := range cfg.PlatformSuffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		r.platformSuffixes = append(r.platformSuffixes, s)
	}
	return r
}

// StripPort returns host without a trailing :port.
func StripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// Classify decides the addressing mode of a Host header value (port allowed).
func (r *Router) Classify(host string) Classification {
	if strings.TrimSpace(host) == "" {
		host = r.defaultHost
	}
	h := strings.ToLower(StripPort(host))

	if strings.Contains(h, "localhost") || h == "127.0.0.1" {
		return PlatformDomain
	}
	for _, suffix := range r.platformSuffixes {
		if strings.HasSuffix(h, suffix) || h == strings.TrimPrefix(suffix, ".") {
			return PlatformDomain
		}
	}
	return CustomDomain
}

// Excluded reports whether a path bypasses tenant routing entirely.
func (r *Router) Excluded(path string) bool {
	for _, prefix := range r.reserved {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	if rootFilePattern.MatchString(path) {
		return true
	}
	last := path[strings.LastIndex(path, "/")+1:]
	return strings.Contains(last, ".")
}

// RewritePath returns the internal path for a custom-domain request: "/" + host + path.
func RewritePath(host, path string) string {
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + host + path
}

// Rewrite applies tenant routing to req in place. It reports whether the path changed.
// The query string is left exactly as received.
func (r *Router) Rewrite(req *http.Request) bool {
	if r.Excluded(req.URL.Path) {
		return false
	}
	host := req.Host
	if strings.TrimSpace(host) == "" {
		host = r.defaultHost
	}
	if r.Classify(host) == PlatformDomain {
		metrics.HostRoutingDecisions.WithLabelValues(PlatformDomain.String()).Inc()
		return false
	}

	hostname := strings.ToLower(StripPort(host))
	req.URL.Path = RewritePath(hostname, req.URL.Path)
	if req.URL.RawPath != "" {
		req.URL.RawPath = RewritePath(hostname, req.URL.RawPath)
	}
	req.RequestURI = req.URL.RequestURI()
	metrics.HostRoutingDecisions.WithLabelValues(CustomDomain.String()).Inc()
	return true
}

type rewrittenKey struct{}

// Rewritten reports whether req reached the handlers through a custom-domain rewrite.
func Rewritten(req *http.Request) bool {
	v, _ := req.Context().Value(rewrittenKey{}).(bool)
	return v
}

// PublicPath turns a store-relative path into the path the visitor's browser should see.
// On custom domains the slug is implicit in the host; on platform domains it leads the path.
func PublicPath(req *http.Request, slug, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if Rewritten(req) {
		return path
	}
	return "/" + slug + path
}

// Handler runs the rewrite ahead of next, which is normally the gin engine.
func (r *Router) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		original := req.URL.Path
		if r.Rewrite(req) {
			r.logger.Debug("Rewrote custom domain request",
				slog.String("host", req.Host),
				slog.String("from", original),
				slog.String("to", req.URL.Path),
			)
			req = req.WithContext(context.WithValue(req.Context(), rewrittenKey{}, true))
		}
		next.ServeHTTP(w, req)
	})
}
