// controller/expiration_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/subexpiry/service"
	"github.com/dev-mohitbeniwal/subexpiry/util"
)

type ExpirationController struct {
	expirationService service.IExpirationService
}

func NewExpirationController(expirationService service.IExpirationService) *ExpirationController {
	return &ExpirationController{
		expirationService: expirationService,
	}
}

// RegisterRoutes registers the API routes
func (ec *ExpirationController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/check", ec.CheckExpirations)
}

// RegisterRoot registers the liveness route
func (ec *ExpirationController) RegisterRoot(r gin.IRoutes) {
	r.GET("/", ec.Root)
}

// CheckExpirations runs one pass and reports once its decisions are issued.
func (ec *ExpirationController) CheckExpirations(c *gin.Context) {
	summary, err := ec.expirationService.RunPass(c.Request.Context(), service.TriggerOnDemand)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to check data in cache.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Data in cache checked.",
		"summary": summary,
	})
}

// Root endpoint
func (ec *ExpirationController) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}
