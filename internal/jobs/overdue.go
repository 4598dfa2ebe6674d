package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper flips overdue installments; implemented by the payment use case.
type Sweeper interface {
	SweepOverdue(ctx context.Context, now time.Time) (int64, error)
}

const sweepTimeout = time.Minute

// OverdueJob runs one sweep per cron tick.
type OverdueJob struct {
	sweeper Sweeper
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewOverdueJob(s Sweeper, log logrus.FieldLogger) *OverdueJob {
	return &OverdueJob{sweeper: s, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Run implements cron.Job.
func (j *OverdueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := j.sweeper.SweepOverdue(ctx, j.now())
	if err != nil {
		j.log.WithError(err).Error("overdue sweep failed")
		return
	}
	j.log.WithField("marked", n).Info("overdue sweep done")
}

// NewScheduler registers the job on spec (standard 5-field or descriptors
// such as @hourly). Overlapping runs are skipped. Start and Stop are left to
// the caller.
func NewScheduler(spec string, job cron.Job, log logrus.FieldLogger) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log})),
	)
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, err
	}
	return c, nil
}

// cronLogger adapts logrus to cron.Logger.
type cronLogger struct{ l logrus.FieldLogger }

func (c cronLogger) Info(msg string, kv ...any) { c.l.WithFields(fields(kv)).Debug(msg) }

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.WithError(err).WithFields(fields(kv)).Error(msg)
}

func fields(kv []any) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			f[k] = kv[i+1]
		}
	}
	return f
}
