package middleware

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/tenant"
	"github.com/gin-gonic/gin"
)

const (
	tenantStateKey        = contextKey("tenantState")
	sessionTokenKey       = contextKey("sessionToken")
	customerIDKey         = contextKey("customerID")
	upstreamAuthKey       = contextKey("upstreamAuthorization")
	visitorIDKey          = contextKey("visitorID")
	storeSlugParam        = "storeSlug"
	SessionCookieName     = "session"
	VisitorCookieName     = "v_visitor"
	visitorCookieMaxAge   = 2 * 365 * 24 * 60 * 60
	sessionCookieFallback = 7 * 24 * 60 * 60
)

// GetTenantState returns the tenant mounted by TenantContext.
func GetTenantState(c *gin.Context) (tenant.State, bool) {
	v, ok := c.Request.Context().Value(tenantStateKey).(tenant.State)
	return v, ok
}

// GetStoreSlug returns the route's store slug, the hostname on custom domains.
func GetStoreSlug(c *gin.Context) string {
	if state, ok := GetTenantState(c); ok {
		return state.StoreSlug
	}
	return c.Param(storeSlugParam)
}

// GetSessionToken returns the customer's session token set by SessionGuard.
func GetSessionToken(c *gin.Context) (string, bool) {
	token, ok := c.Request.Context().Value(sessionTokenKey).(string)
	return token, ok && token != ""
}

// GetCustomerIDFromContext returns the session subject when the token was verified locally.
func GetCustomerIDFromContext(c *gin.Context) (string, bool) {
	id, ok := c.Request.Context().Value(customerIDKey).(string)
	return id, ok && id != ""
}

// GetUpstreamAuthorization returns the Authorization header value to forward to the ERP.
func GetUpstreamAuthorization(c *gin.Context) string {
	v, _ := c.Request.Context().Value(upstreamAuthKey).(string)
	return v
}

// GetVisitorID returns the anonymous visitor id assigned by VisitorID.
func GetVisitorID(c *gin.Context) (string, bool) {
	id, ok := c.Request.Context().Value(visitorIDKey).(string)
	return id, ok && id != ""
}
