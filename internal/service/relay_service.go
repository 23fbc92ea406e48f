package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/config"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/email"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/logger"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/relay"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/repository"
)

// Relay pipeline errors
var (
	ErrRateLimited     = errors.New("sender has reached the send limit for this window")
	ErrMessageRejected = errors.New("message was rejected by the content filter")
	ErrDeliveryFailed  = errors.New("failed to deliver the message")
)

// RateLimiter reserves one send slot per attempt for a sender identity.
type RateLimiter interface {
	Reserve(ctx context.Context, senderHash string, now time.Time) (*model.RateLimitRecord, error)
}

// AuditWriter appends outcome records.
type AuditWriter interface {
	Create(ctx context.Context, rec *model.AuditRecord) error
}

// ContentFilter decides whether a message may be delivered.
type ContentFilter interface {
	Allow(ctx context.Context, message string) bool
}

// RelayService runs the request pipeline for one validated message:
// rate-limit, content-filter, delivery, audit. Steps are strictly
// sequential and short-circuit on first failure; every attempt writes
// exactly one audit record once the terminal state is known.
type RelayService struct {
	limiter RateLimiter
	audit   AuditWriter
	filter  ContentFilter
	sender  email.Sender
	cfg     *config.Config
	log     *logger.Logger
	now     func() time.Time
}

// NewRelayService creates a new RelayService.
func NewRelayService(
	limiter RateLimiter,
	audit AuditWriter,
	filter ContentFilter,
	sender email.Sender,
	cfg *config.Config,
	log *logger.Logger,
) *RelayService {
	return &RelayService{
		limiter: limiter,
		audit:   audit,
		filter:  filter,
		sender:  sender,
		cfg:     cfg,
		log:     log.WithComponent("relay"),
		now:     time.Now,
	}
}

// Send relays one validated gratitude message. It returns nil on
// successful delivery, one of the sentinel errors for known terminal
// states, or a wrapped infrastructure error otherwise.
func (s *RelayService) Send(ctx context.Context, g *model.Gratitude) error {
	senderHash := relay.HashSenderToken(g.SenderToken)
	domain := relay.RecipientDomain(g.RecipientEmail)

	// Rate limit: one atomic reservation per attempt
	if _, err := s.limiter.Reserve(ctx, senderHash, s.now()); err != nil {
		if errors.Is(err, repository.ErrRateLimited) {
			s.writeAudit(ctx, senderHash, domain, g.Tag, model.AuditStatusRejected)
			return ErrRateLimited
		}
		s.writeAudit(ctx, senderHash, domain, g.Tag, model.AuditStatusError)
		return fmt.Errorf("rate limit check failed: %w", err)
	}

	// Content filter
	if !s.filter.Allow(ctx, g.Message) {
		s.writeAudit(ctx, senderHash, domain, g.Tag, model.AuditStatusRejected)
		return ErrMessageRejected
	}

	// Delivery: render and submit, no retry
	phrase := g.Tag.DisplayPhrase()
	appName := s.cfg.Email.AppName
	msg := email.Message{
		To:       g.RecipientEmail,
		Subject:  fmt.Sprintf("Someone is grateful for you — a message via %s", appName),
		HTMLBody: email.GratitudeEmailHTML(g.Message, phrase, appName),
		TextBody: email.GratitudeEmailText(g.Message, phrase, appName),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("recipient_domain", domain).Msg("delivery failed")
		s.writeAudit(ctx, senderHash, domain, g.Tag, model.AuditStatusError)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.writeAudit(ctx, senderHash, domain, g.Tag, model.AuditStatusSent)
	s.log.Outcome(senderHash, domain, string(g.Tag), model.AuditStatusSent)
	return nil
}

// writeAudit appends the outcome record. Best effort: a failed write is
// logged and never surfaces to the caller.
func (s *RelayService) writeAudit(ctx context.Context, senderHash, domain string, tag model.ContextTag, status string) {
	rec := &model.AuditRecord{
		ID:              uuid.New().String(),
		SenderHash:      senderHash,
		RecipientDomain: domain,
		Tag:             tag,
		Status:          status,
		CreatedAt:       s.now(),
	}
	if err := s.audit.Create(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("status", status).Msg("failed to write audit record")
	}
}
