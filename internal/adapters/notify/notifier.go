// Package notify moves inquiry follow-up off the request path: the API
// enqueues an asynq task and the worker turns it into an e-mail.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/landaireal/landai-rent/internal/adapters/observability"
	"github.com/landaireal/landai-rent/internal/domain"
)

const (
	TypeInquiryNotify = "inquiry:notify"
	QueueName         = "notifications"
)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

var _ Enqueuer = (*asynq.Client)(nil)

type Notifier struct {
	q       Enqueuer
	newID   func() string
	retry   int
	timeout time.Duration
}

func NewNotifier(q Enqueuer) *Notifier {
	return &Notifier{q: q, newID: uuid.NewString, retry: 5, timeout: 30 * time.Second}
}

// NotifyInquiry enqueues one inquiry:notify task carrying the stored inquiry.
func (n *Notifier) NotifyInquiry(ctx context.Context, in domain.Inquiry) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal inquiry %d: %w", in.ID, err)
	}
	task := asynq.NewTask(TypeInquiryNotify, payload)
	_, err = n.q.EnqueueContext(ctx, task,
		asynq.TaskID(n.newID()),
		asynq.Queue(QueueName),
		asynq.MaxRetry(n.retry),
		asynq.Timeout(n.timeout),
	)
	if err != nil {
		observability.ObserveTask(TypeInquiryNotify, "enqueue_failed")
		return fmt.Errorf("enqueue %s for inquiry %d: %w", TypeInquiryNotify, in.ID, err)
	}
	observability.ObserveTask(TypeInquiryNotify, "enqueued")
	return nil
}
