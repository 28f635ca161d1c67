// controller/audit_controller.go
package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/subexpiry/audit"
	"github.com/dev-mohitbeniwal/subexpiry/util"
)

const defaultAuditWindow = 24 * time.Hour

type AuditController struct {
	auditService audit.Service
	now          func() time.Time
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
		now:          time.Now,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/expirations", ac.QueryExpirations)
}

// QueryExpirations lists recorded expirations. from and to are RFC3339 and
// default to the last 24 hours; fbid is optional.
func (ac *AuditController) QueryExpirations(c *gin.Context) {
	to, err := parseTimeParam(c.Query("to"), ac.now())
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' parameter", err)
		return
	}
	from, err := parseTimeParam(c.Query("from"), to.Add(-defaultAuditWindow))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' parameter", err)
		return
	}
	if from.After(to) {
		util.RespondWithError(c, http.StatusBadRequest, "'from' must not be after 'to'",
			fmt.Errorf("from %s is after to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)))
		return
	}

	logs, err := ac.auditService.QueryExpirations(c.Request.Context(), from, to, c.Query("fbid"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query expirations", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expirations": logs})
}

func parseTimeParam(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, raw)
}
