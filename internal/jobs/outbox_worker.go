package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/markethub/admin-backend/internal/notify"
)

var errInvalidPayload = errors.New("invalid_payload")

// Topics the services enqueue. Anything else in the table is from an older
// deploy and gets retried into failure rather than dropped silently.
const (
	TopicVendorStatusChanged    = "vendor_status_changed"
	TopicAffiliateStatusChanged = "affiliate_status_changed"
	TopicProductStatusChanged   = "product_status_changed"
	TopicVendorDocumentReviewed = "vendor_document_reviewed"
)

type OutboxJob struct {
	ID          int64
	Topic       string
	Payload     []byte
	Status      string
	Attempts    int32
	LastError   string
	AvailableAt time.Time
}

type OutboxRepository interface {
	ClaimPending(ctx context.Context, limit int32) ([]OutboxJob, error)
	MarkDone(ctx context.Context, jobID int64) error
	MarkRetry(ctx context.Context, jobID int64, nextAvailableAt time.Time, lastError string) error
	MarkFailed(ctx context.Context, jobID int64, lastError string) error
}

type Worker struct {
	outboxRepo   OutboxRepository
	sender       notify.Sender
	maxAttempts  int32
	now          func() time.Time
	retryBackoff func(attempt int32) time.Duration
}

func NewWorker(outboxRepo OutboxRepository, sender notify.Sender) *Worker {
	return &Worker{
		outboxRepo:  outboxRepo,
		sender:      sender,
		maxAttempts: 5,
		now:         func() time.Time { return time.Now().UTC() },
		retryBackoff: func(attempt int32) time.Duration {
			if attempt < 1 {
				attempt = 1
			}
			return time.Duration(attempt*15) * time.Second
		},
	}
}

func (w *Worker) RunOnce(ctx context.Context, batchSize int32) error {
	claimed, err := w.outboxRepo.ClaimPending(ctx, batchSize)
	if err != nil {
		return err
	}

	for _, job := range claimed {
		if err := w.processJob(ctx, job); err != nil {
			return err
		}
	}

	return nil
}

func (w *Worker) processJob(ctx context.Context, job OutboxJob) error {
	switch job.Topic {
	case TopicVendorStatusChanged, TopicAffiliateStatusChanged, TopicProductStatusChanged, TopicVendorDocumentReviewed:
		return w.deliver(ctx, job)
	default:
		if job.Attempts >= w.maxAttempts {
			return w.outboxRepo.MarkFailed(ctx, job.ID, "unsupported_topic")
		}
		next := w.now().Add(w.retryBackoff(job.Attempts))
		return w.outboxRepo.MarkRetry(ctx, job.ID, next, "unsupported_topic")
	}
}

func (w *Worker) deliver(ctx context.Context, job OutboxJob) error {
	if !json.Valid(job.Payload) {
		return w.handleJobError(ctx, job, errInvalidPayload)
	}

	if err := w.sender.Send(ctx, job.Topic, job.Payload); err != nil {
		return w.handleJobError(ctx, job, err)
	}

	return w.outboxRepo.MarkDone(ctx, job.ID)
}

func (w *Worker) handleJobError(ctx context.Context, job OutboxJob, err error) error {
	msg := err.Error()
	if job.Attempts >= w.maxAttempts {
		return w.outboxRepo.MarkFailed(ctx, job.ID, msg)
	}
	next := w.now().Add(w.retryBackoff(job.Attempts))
	return w.outboxRepo.MarkRetry(ctx, job.ID, next, msg)
}
