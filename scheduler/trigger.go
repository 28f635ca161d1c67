package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
	"github.com/dev-mohitbeniwal/subexpiry/service"
)

// Trigger fires the startup pass once and the recurring pass on a cron schedule.
// Recurring passes are not serialized with each other or with on-demand passes.
type Trigger struct {
	svc      service.IExpirationService
	schedule string
	cron     *cron.Cron
	wg       sync.WaitGroup
}

func NewTrigger(svc service.IExpirationService, schedule string) *Trigger {
	return &Trigger{svc: svc, schedule: schedule}
}

// Start runs the startup pass in the background and registers the recurring pass.
func (t *Trigger) Start(ctx context.Context) error {
	cronLog := zapCronLogger{log: logger.Log.Sugar()}
	t.cron = cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog)),
	)

	_, err := t.cron.AddFunc(t.schedule, func() {
		logger.Debug("Running batch expiration check...")
		t.runPass(ctx, service.TriggerRecurring)
	})
	if err != nil {
		return fmt.Errorf("invalid expiry schedule %q: %w", t.schedule, err)
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.runPass(ctx, service.TriggerStartup)
	}()

	t.cron.Start()
	logger.Info("Expiration trigger started", zap.String("schedule", t.schedule))
	return nil
}

// Stop halts the cron schedule and waits for running passes.
func (t *Trigger) Stop() {
	if t.cron != nil {
		<-t.cron.Stop().Done()
	}
	t.wg.Wait()
}

func (t *Trigger) runPass(ctx context.Context, trigger string) {
	if _, err := t.svc.RunPass(ctx, trigger); err != nil {
		logger.Error("Scheduled expiration pass failed", zap.String("trigger", trigger), zap.Error(err))
	}
}

// zapCronLogger adapts zap to cron.Logger.
type zapCronLogger struct {
	log *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
