package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/landaireal/landai-rent/internal/adapters/observability"
	"github.com/landaireal/landai-rent/internal/domain"
)

type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

type Processor struct {
	sender Sender
	to     []string
}

func NewProcessor(s Sender, to []string) *Processor { return &Processor{sender: s, to: to} }

// Register wires the processor's handlers into mux.
func (p *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeInquiryNotify, p.HandleInquiryNotify)
}

func (p *Processor) HandleInquiryNotify(ctx context.Context, t *asynq.Task) error {
	var q domain.Inquiry
	if err := json.Unmarshal(t.Payload(), &q); err != nil {
		observability.ObserveTask(TypeInquiryNotify, "failed")
		// a payload that can't decode will never succeed
		return fmt.Errorf("decode inquiry payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := p.sender.Send(ctx, InquiryMessage(q, p.to)); err != nil {
		observability.ObserveTask(TypeInquiryNotify, "failed")
		return fmt.Errorf("send inquiry %d: %w", q.ID, err)
	}
	observability.ObserveTask(TypeInquiryNotify, "done")
	log.Info().Int64("inquiry_id", q.ID).Msg("inquiry notification sent")
	return nil
}

func InquiryMessage(q domain.Inquiry, to []string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New inquiry #%d\n\n", q.ID)
	fmt.Fprintf(&b, "Name:    %s\n", q.Name)
	fmt.Fprintf(&b, "Email:   %s\n", q.Email)
	fmt.Fprintf(&b, "Phone:   %s\n", q.Phone)
	if q.PropertyID != nil {
		fmt.Fprintf(&b, "Listing: #%d\n", *q.PropertyID)
	}
	fmt.Fprintf(&b, "Sent:    %s\n\n", q.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	b.WriteString(q.Message)
	b.WriteString("\n")

	subject := "New inquiry from " + q.Name
	if q.PropertyID != nil {
		subject = fmt.Sprintf("%s about listing #%d", subject, *q.PropertyID)
	}
	return Message{To: to, ReplyTo: q.Email, Subject: subject, Body: b.String()}
}
