package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"hotelbooking/services/logger"
)

const expiryTimeout = 2 * time.Minute

// PendingExpirer cancels pending reservations whose check-in has passed.
type PendingExpirer interface {
	ExpirePending(ctx context.Context, now time.Time) (int, error)
}

// ExpirePendingJob runs one expiry pass.
func ExpirePendingJob(expirer PendingExpirer, log logger.Logger, now func() time.Time) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), expiryTimeout)
		defer cancel()

		started := now()
		n, err := expirer.ExpirePending(ctx, started)
		if err != nil {
			log.Error("pending reservation expiry failed after %d cancellations: %v", n, err)
			return
		}
		log.Info("pending reservation expiry cancelled %d reservations in %s", n, time.Since(started))
	}
}

// InitCronJobs registers the jobs on c and starts it.
func InitCronJobs(c *cron.Cron, spec string, expirer PendingExpirer, log logger.Logger) error {
	if _, err := c.AddFunc(spec, ExpirePendingJob(expirer, log, time.Now)); err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully (pending expiry: %s)", spec)
	return nil
}
