package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultMaxAssignmentAttempts bounds how many times a parked delivery is
// retried before it is dropped with an error log. At one retry per second
// this gives the fleet a minute to come online.
const DefaultMaxAssignmentAttempts = 60

// AssignmentRetryJob periodically re-attempts courier assignment for
// deliveries parked on the retry queue. Runs every second.
type AssignmentRetryJob struct {
	handler     commands.AssignDeliveryCommandHandler
	queue       *AssignmentRetryQueue
	maxAttempts int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewAssignmentRetryJob creates a retry job draining the given queue.
func NewAssignmentRetryJob(
	handler commands.AssignDeliveryCommandHandler,
	queue *AssignmentRetryQueue,
	logger *slog.Logger,
) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		handler:     handler,
		queue:       queue,
		maxAttempts: DefaultMaxAssignmentAttempts,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "assignment_retry_job"),
	}
}

// Start begins draining the retry queue every second.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "assignment retry job started (running every second)")
	return nil
}

// Stop stops the retry job.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "assignment retry job stopped")
}

// RunOnce drains the queue and attempts assignment for each parked
// delivery. A delivery that still cannot be assigned goes back on the queue
// until its attempts are exhausted; then it is dropped and logged at error
// level for operator attention.
func (j *AssignmentRetryJob) RunOnce(ctx context.Context) {
	for _, entry := range j.queue.dequeueAll() {
		entry.attempts++

		cmd, err := commands.NewAssignDeliveryCommand(entry.deliveryID)
		if err != nil {
			j.logger.ErrorContext(ctx, "dropping unassignable delivery", "error", err)
			continue
		}

		err = j.handler.Handle(ctx, cmd)
		if err == nil {
			j.logger.InfoContext(ctx, "parked delivery assigned",
				"deliveryId", entry.deliveryID.String(),
				"attempts", entry.attempts,
			)
			continue
		}

		if !errors.Is(err, errs.ErrNoCourierAvailable) {
			j.logger.ErrorContext(ctx, "assignment retry failed",
				"deliveryId", entry.deliveryID.String(),
				"error", err,
			)
		}

		if entry.attempts >= j.maxAttempts {
			j.logger.ErrorContext(ctx, "assignment attempts exhausted, dropping delivery",
				"deliveryId", entry.deliveryID.String(),
				"attempts", entry.attempts,
			)
			continue
		}

		j.queue.requeue(entry)
	}
}
