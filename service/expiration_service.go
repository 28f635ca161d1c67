// service/expiration_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
	"github.com/dev-mohitbeniwal/subexpiry/metrics"
	"github.com/dev-mohitbeniwal/subexpiry/model"
)

const (
	TriggerStartup   = "startup"
	TriggerRecurring = "recurring"
	TriggerOnDemand  = "on_demand"
)

// IExpirationService defines the reconciliation operations
type IExpirationService interface {
	RunPass(ctx context.Context, trigger string) (*model.PassSummary, error)
}

// ExpirationService runs one scan-evaluate cycle per call. Calls may overlap;
// nothing here serializes them.
type ExpirationService struct {
	scanner     *KeyScanner
	evaluator   *Evaluator
	applier     *Applier
	scheduler   Scheduler
	concurrency int
	now         func() time.Time
	metrics     *metrics.Metrics
}

var _ IExpirationService = &ExpirationService{}

type ServiceOption func(*ExpirationService)

// WithConcurrency bounds how many immediate applies one pass runs at once.
func WithConcurrency(n int) ServiceOption {
	return func(s *ExpirationService) { s.concurrency = n }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ExpirationService) { s.now = now }
}

func WithServiceMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *ExpirationService) { s.metrics = m }
}

func NewExpirationService(
	scanner *KeyScanner,
	evaluator *Evaluator,
	applier *Applier,
	scheduler Scheduler,
	opts ...ServiceOption,
) *ExpirationService {
	s := &ExpirationService{
		scanner:     scanner,
		evaluator:   evaluator,
		applier:     applier,
		scheduler:   scheduler,
		concurrency: 16,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunPass scans every key, applies what is due and schedules the rest. It
// returns once the immediate applies it dispatched have finished; deferred
// ones fire later from the scheduler. Only an enumeration failure is returned.
func (s *ExpirationService) RunPass(ctx context.Context, trigger string) (*model.PassSummary, error) {
	summary := &model.PassSummary{
		PassID:    uuid.New().String(),
		Trigger:   trigger,
		StartedAt: s.now(),
	}
	log := logger.WithContext(zap.String("passID", summary.PassID), zap.String("trigger", trigger))
	log.Debug("Running batch expiration check")

	// Applies must finish even if the caller goes away mid-pass.
	applyCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	stats, err := s.scanner.Scan(ctx, func(entry model.TrackedEntry) {
		decision := s.evaluator.Evaluate(entry.ID, entry.Value, summary.StartedAt)
		summary.Record(decision.Kind)
		s.metrics.ObserveDecision(decision.Kind.String())

		switch {
		case decision.Immediate():
			id := entry.ID
			g.Go(func() error {
				s.applier.Apply(applyCtx, id)
				return nil
			})
		case decision.Kind == model.DecisionDueLater:
			if !s.scheduler.ScheduleAt(decision.ExpireAt, entry.ID) {
				log.Warn("Deferred expiration not scheduled", zap.String("fbid", entry.ID))
				return
			}
			fields := []zap.Field{zap.String("fbid", entry.ID), zap.Duration("delay", decision.Delay)}
			if decision.Annotation != "" {
				fields = append(fields, zap.String("annotation", decision.Annotation))
			}
			log.Info(fmt.Sprintf("FBID %s will expire on %s", entry.ID, decision.ExpireAt.Format(time.RFC3339)), fields...)
		default:
			log.Warn("Skipping malformed expiration value",
				zap.String("fbid", entry.ID),
				zap.String("value", entry.Value),
				zap.Error(decision.Err))
		}
	})

	_ = g.Wait()

	summary.Keys = stats.Keys
	summary.Missing = stats.Missing
	summary.Failed = stats.Failed
	summary.Duration = s.now().Sub(summary.StartedAt)
	s.metrics.ObservePass(trigger, summary.Duration, err)

	if err != nil {
		log.Error("Error performing batch expiration check", zap.Error(err))
		return summary, err
	}

	log.Info("Batch expiration check completed",
		zap.Int("keys", summary.Keys),
		zap.Int("alreadyExpired", summary.AlreadyExpired),
		zap.Int("dueNow", summary.DueNow),
		zap.Int("dueLater", summary.DueLater),
		zap.Int("malformed", summary.Malformed),
		zap.Int("missing", summary.Missing),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}
