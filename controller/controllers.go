// controller/controllers.go
package controller

import (
	"github.com/dev-mohitbeniwal/subexpiry/audit"
	"github.com/dev-mohitbeniwal/subexpiry/service"
)

type Controllers struct {
	Expiration *ExpirationController
	// Audit is nil when no audit trail is configured.
	Audit *AuditController
}

func InitializeControllers(expirationService service.IExpirationService, auditService audit.Service) *Controllers {
	controllers := &Controllers{
		Expiration: NewExpirationController(expirationService),
	}
	if auditService != nil {
		controllers.Audit = NewAuditController(auditService)
	}
	return controllers
}
