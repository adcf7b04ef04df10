package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/services/logger"
)

type fakeExpirer struct {
	calls   int
	lastNow time.Time
	count   int
	err     error
	hasDL   bool
}

func (f *fakeExpirer) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	f.calls++
	f.lastNow = now
	_, f.hasDL = ctx.Deadline()
	return f.count, f.err
}

func TestExpirePendingJob(t *testing.T) {
	fixed := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	t.Run("passes the clock and a deadline", func(t *testing.T) {
		exp := &fakeExpirer{count: 3}
		ExpirePendingJob(exp, logger.NewDiscardLogger(), now)()

		assert.Equal(t, 1, exp.calls)
		assert.Equal(t, fixed, exp.lastNow)
		assert.True(t, exp.hasDL)
	})

	t.Run("errors do not panic", func(t *testing.T) {
		exp := &fakeExpirer{count: 1, err: errors.New("db down")}
		assert.NotPanics(t, ExpirePendingJob(exp, logger.NewDiscardLogger(), now))
		assert.Equal(t, 1, exp.calls)
	})
}

func TestInitCronJobs(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	require.NoError(t, InitCronJobs(c, "0 0 * * *", &fakeExpirer{}, logger.NewDiscardLogger()))
	assert.Len(t, c.Entries(), 1)

	err := InitCronJobs(cron.New(), "every tuesday", &fakeExpirer{}, logger.NewDiscardLogger())
	assert.Error(t, err)
}
