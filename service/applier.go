// service/applier.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
	"github.com/dev-mohitbeniwal/subexpiry/metrics"
	"github.com/dev-mohitbeniwal/subexpiry/util"
)

// Applier moves a subscriber to the expired state. It is the idempotency
// boundary: every caller (pass, deferred timer, duplicate pass) may invoke it
// for the same id, and it only ever writes the sentinel.
type Applier struct {
	cache    CacheStore
	records  RecordStore
	sentinel string
	recheck  bool
	eventBus *util.EventBus
	metrics  *metrics.Metrics
}

type ApplierOption func(*Applier)

// WithRecheck controls whether Apply reads the cache first and skips ids
// that already hold the sentinel.
func WithRecheck(enabled bool) ApplierOption {
	return func(a *Applier) { a.recheck = enabled }
}

func WithEventBus(eventBus *util.EventBus) ApplierOption {
	return func(a *Applier) { a.eventBus = eventBus }
}

func WithApplierMetrics(m *metrics.Metrics) ApplierOption {
	return func(a *Applier) { a.metrics = m }
}

func NewApplier(cache CacheStore, records RecordStore, sentinel string, opts ...ApplierOption) *Applier {
	a := &Applier{
		cache:    cache,
		records:  records,
		sentinel: sentinel,
		recheck:  true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply never returns an error; failures are logged per step.
func (a *Applier) Apply(ctx context.Context, id string) {
	log := logger.WithContext(zap.String("fbid", id))

	if a.recheck {
		current, found, err := a.cache.Get(ctx, id)
		switch {
		case err != nil:
			log.Warn("Re-check read failed, applying anyway", zap.Error(err))
		case found && current == a.sentinel:
			log.Info(fmt.Sprintf("FBID %s has already expired. Skipping unnecessary update.", id))
			a.metrics.ObserveApply("skipped")
			return
		}
	}

	cacheErr := a.cache.Set(ctx, id, a.sentinel)
	if cacheErr != nil {
		log.Error("Failed to write expired marker to cache", zap.Error(cacheErr))
	} else {
		log.Info(fmt.Sprintf("FBID %s has expired. Value updated to '%s' in cache.", id, a.sentinel))
	}

	payload := util.ExpiredPayload{FBID: id, Sentinel: a.sentinel}

	rows, err := a.records.MarkExpired(ctx, id, a.sentinel)
	switch {
	case err != nil:
		log.Error(fmt.Sprintf("Error updating subscription in MySQL for FBID %s", id), zap.Error(err))
		payload.RecordError = err.Error()
		a.metrics.ObserveRecordUpdate("error")
	case rows == 1:
		log.Info(fmt.Sprintf("FBID %s has expired. Value updated to '%s' in MySQL.", id, a.sentinel))
		payload.RecordUpdated = true
		a.metrics.ObserveRecordUpdate("updated")
	default:
		log.Debug("No subscriber row changed", zap.Int64("rowsAffected", rows))
		a.metrics.ObserveRecordUpdate("unchanged")
	}

	// The cache must end expired whatever the mirror did.
	if cacheErr != nil {
		if cacheErr = a.cache.Set(ctx, id, a.sentinel); cacheErr != nil {
			log.Error("Failed to re-affirm expired marker in cache", zap.Error(cacheErr))
			a.metrics.ObserveApply("cache_error")
			return
		}
		log.Info("Subscription saved in cache", zap.String("value", a.sentinel))
	}

	a.metrics.ObserveApply("applied")
	if a.eventBus != nil {
		a.eventBus.Publish(ctx, util.EventSubscriptionExpired, payload)
	}
}
