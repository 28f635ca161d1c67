// service/services.go
package service

import (
	"time"

	"github.com/dev-mohitbeniwal/subexpiry/metrics"
	"github.com/dev-mohitbeniwal/subexpiry/model"
	"github.com/dev-mohitbeniwal/subexpiry/util"
)

type Services struct {
	Scanner    *KeyScanner
	Evaluator  *Evaluator
	Applier    *Applier
	Expiration IExpirationService
}

// Settings carries the expiry.* configuration into the services.
type Settings struct {
	Sentinel           string
	Location           *time.Location
	RecheckBeforeApply bool
	ApplyConcurrency   int
}

func InitializeServices(
	cache CacheStore,
	records RecordStore,
	scheduler Scheduler,
	eventBus *util.EventBus,
	m *metrics.Metrics,
	settings Settings,
) *Services {
	if settings.Sentinel == "" {
		settings.Sentinel = model.ExpiredSentinel
	}

	scanner := NewKeyScanner(cache)
	evaluator := NewEvaluator(settings.Sentinel, settings.Location)
	applier := NewApplier(cache, records, settings.Sentinel,
		WithRecheck(settings.RecheckBeforeApply),
		WithEventBus(eventBus),
		WithApplierMetrics(m),
	)

	opts := []ServiceOption{WithServiceMetrics(m)}
	if settings.ApplyConcurrency > 0 {
		opts = append(opts, WithConcurrency(settings.ApplyConcurrency))
	}

	return &Services{
		Scanner:    scanner,
		Evaluator:  evaluator,
		Applier:    applier,
		Expiration: NewExpirationService(scanner, evaluator, applier, scheduler, opts...),
	}
}
