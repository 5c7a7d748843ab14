package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/landaireal/landai-rent/internal/domain"
)

type CommandService struct {
	store    domain.Storage
	cache    domain.Cache           // optional
	notifier domain.InquiryNotifier // optional
}

func NewCommandService(s domain.Storage, c domain.Cache, n domain.InquiryNotifier) *CommandService {
	return &CommandService{store: s, cache: c, notifier: n}
}

// CreateProperty stores the listing and retires the cached collection.
func (s *CommandService) CreateProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	p, err := s.store.CreateProperty(ctx, in)
	if err != nil {
		return domain.Property{}, err
	}
	s.invalidateList(ctx)
	return p, nil
}

func (s *CommandService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, propertiesGenKey); err != nil {
		log.Warn().Err(err).Msg("invalidate properties cache failed")
	}
}

// CreateInquiry stores the inquiry, then hands it to the notifier. The
// inquiry is already persisted, so a notify failure is only logged.
func (s *CommandService) CreateInquiry(ctx context.Context, in domain.InquiryInput) (domain.Inquiry, error) {
	q, err := s.store.CreateInquiry(ctx, in)
	if err != nil {
		return domain.Inquiry{}, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyInquiry(ctx, q); err != nil {
			log.Warn().Err(err).Int64("inquiry_id", q.ID).Msg("inquiry notification not queued")
		}
	}
	return q, nil
}
