package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/config"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/email"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/logger"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/repository"
)

type fakeLimiter struct {
	err   error
	calls int
}

func (f *fakeLimiter) Reserve(ctx context.Context, senderHash string, now time.Time) (*model.RateLimitRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.RateLimitRecord{SenderHash: senderHash, Count: 1, WindowStart: now}, nil
}

type fakeAudit struct {
	err     error
	records []*model.AuditRecord
}

func (f *fakeAudit) Create(ctx context.Context, rec *model.AuditRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

type fakeFilter struct {
	allow bool
}

func (f *fakeFilter) Allow(ctx context.Context, message string) bool {
	return f.allow
}

type fakeSender struct {
	err  error
	sent []email.Message
}

func (f *fakeSender) Send(ctx context.Context, msg email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type pipeline struct {
	svc     *RelayService
	limiter *fakeLimiter
	audit   *fakeAudit
	filter  *fakeFilter
	sender  *fakeSender
}

func newPipeline() *pipeline {
	p := &pipeline{
		limiter: &fakeLimiter{},
		audit:   &fakeAudit{},
		filter:  &fakeFilter{allow: true},
		sender:  &fakeSender{},
	}
	cfg := &config.Config{}
	cfg.Email.AppName = "StillGrateful"
	p.svc = NewRelayService(p.limiter, p.audit, p.filter, p.sender, cfg, logger.New("disabled", "json"))
	return p
}

func testMessage() *model.Gratitude {
	return &model.Gratitude{
		Message:        "Thank you for believing in me back then.",
		RecipientEmail: "teacher@example.com",
		Tag:            model.TagFormerStudent,
		SenderToken:    "client-token",
	}
}

func requireOneAudit(t *testing.T, audit *fakeAudit, status string) *model.AuditRecord {
	t.Helper()
	if len(audit.records) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(audit.records))
	}
	rec := audit.records[0]
	if rec.Status != status {
		t.Fatalf("expected audit status %q, got %q", status, rec.Status)
	}
	return rec
}

func TestRelay_HappyPath(t *testing.T) {
	p := newPipeline()

	if err := p.svc.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if len(p.sender.sent) != 1 {
		t.Fatalf("expected exactly one delivery attempt, got %d", len(p.sender.sent))
	}

	rec := requireOneAudit(t, p.audit, model.AuditStatusSent)
	if rec.RecipientDomain != "example.com" {
		t.Fatalf("expected recipient domain, got %q", rec.RecipientDomain)
	}
	if rec.Tag != model.TagFormerStudent {
		t.Fatalf("expected tag in audit record, got %q", rec.Tag)
	}
	if rec.ID == "" {
		t.Fatalf("expected audit record ID to be set")
	}
}

func TestRelay_AuditRecordNeverCarriesMessageOrToken(t *testing.T) {
	p := newPipeline()
	msg := testMessage()

	if err := p.svc.Send(context.Background(), msg); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	rec := requireOneAudit(t, p.audit, model.AuditStatusSent)
	for _, field := range []string{rec.ID, rec.SenderHash, rec.RecipientDomain, string(rec.Tag), rec.Status} {
		if strings.Contains(field, msg.Message) {
			t.Fatalf("audit field %q contains message text", field)
		}
		if strings.Contains(field, msg.SenderToken) {
			t.Fatalf("audit field %q contains the raw sender token", field)
		}
	}
	if rec.SenderHash == msg.SenderToken {
		t.Fatalf("sender token must be stored hashed")
	}
	if rec.RecipientDomain == msg.RecipientEmail {
		t.Fatalf("full recipient address must not be stored")
	}
}

func TestRelay_RateLimited(t *testing.T) {
	p := newPipeline()
	p.limiter.err = repository.ErrRateLimited

	err := p.svc.Send(context.Background(), testMessage())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	requireOneAudit(t, p.audit, model.AuditStatusRejected)
	if len(p.sender.sent) != 0 {
		t.Fatalf("expected no delivery attempt after a rate-limit denial")
	}
}

func TestRelay_LimiterInfrastructureFailure(t *testing.T) {
	p := newPipeline()
	p.limiter.err = errors.New("connection refused")

	err := p.svc.Send(context.Background(), testMessage())
	if err == nil || errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected an infrastructure error, got %v", err)
	}

	requireOneAudit(t, p.audit, model.AuditStatusError)
	if len(p.sender.sent) != 0 {
		t.Fatalf("expected no delivery attempt after a limiter failure")
	}
}

func TestRelay_ContentFilterRejects(t *testing.T) {
	p := newPipeline()
	p.filter.allow = false

	err := p.svc.Send(context.Background(), testMessage())
	if !errors.Is(err, ErrMessageRejected) {
		t.Fatalf("expected ErrMessageRejected, got %v", err)
	}

	requireOneAudit(t, p.audit, model.AuditStatusRejected)
	if len(p.sender.sent) != 0 {
		t.Fatalf("expected no delivery attempt for a rejected message")
	}
}

func TestRelay_DeliveryFailure(t *testing.T) {
	p := newPipeline()
	p.sender.err = errors.New("smtp down")

	err := p.svc.Send(context.Background(), testMessage())
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}

	requireOneAudit(t, p.audit, model.AuditStatusError)
}

func TestRelay_AuditFailureIsSwallowed(t *testing.T) {
	p := newPipeline()
	p.audit.err = errors.New("insert failed")

	if err := p.svc.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("expected audit failure to be suppressed, got %v", err)
	}
	if len(p.sender.sent) != 1 {
		t.Fatalf("expected delivery to proceed despite audit failure")
	}
}

func TestRelay_RendersBothBodies(t *testing.T) {
	p := newPipeline()
	msg := testMessage()

	if err := p.svc.Send(context.Background(), msg); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	sent := p.sender.sent[0]
	if sent.To != msg.RecipientEmail {
		t.Fatalf("expected delivery to %q, got %q", msg.RecipientEmail, sent.To)
	}
	if sent.TextBody == "" || sent.HTMLBody == "" {
		t.Fatalf("expected both plain-text and HTML bodies")
	}
	if !strings.Contains(sent.TextBody, msg.Message) {
		t.Fatalf("expected the message text in the outbound email")
	}
	if !strings.Contains(sent.TextBody, msg.Tag.DisplayPhrase()) {
		t.Fatalf("expected the display phrase in the outbound email")
	}
}
