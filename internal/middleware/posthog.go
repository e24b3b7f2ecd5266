package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventSink receives product analytics events. utils.PosthogClientWrapper implements it.
type EventSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// trackedRoutes names the events worth a product analytics entry, keyed by "METHOD route".
var trackedRoutes = map[string]string{
	"POST /api/v1/transactions":                "transaction_created",
	"DELETE /api/v1/transactions/:id":          "transaction_deleted",
	"PUT /api/v1/user/budget":                  "budget_updated",
	"POST /api/v1/user/share-token/regenerate": "share_token_regenerated",
	"POST /api/v1/invoices":                    "invoice_created",
	"PUT /api/v1/invoices/:id":                 "invoice_updated",
	"GET /api/v1/invoices/:id/pdf":             "invoice_pdf_downloaded",
	"POST /api/v1/reimbursements":              "reimbursement_created",
	"PUT /api/v1/reimbursements/:id":           "reimbursement_updated",
	"POST /api/v1/reimbursements/:id/pay":      "reimbursement_paid",
	"POST /api/v1/upload":                      "file_uploaded",
}

// eventName maps a matched route to its analytics event. Untracked reads yield "".
func eventName(method, fullPath string) string {
	if name, ok := trackedRoutes[method+" "+fullPath]; ok {
		return name
	}
	if method == http.MethodGet || fullPath == "" {
		return ""
	}
	// api_v1_organisations_:id_delete
	name := strings.ReplaceAll(strings.TrimPrefix(fullPath, "/"), "/", "_")
	return name + "_" + strings.ToLower(method)
}

// PosthogMiddleware reports successful authenticated writes to sink.
func PosthogMiddleware(sink EventSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if sink == nil || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		event := eventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if id := c.Param("id"); id != "" {
			props["resource_id"] = id
		}
		sink.Enqueue(userID, event, props)
	}
}
