package moderation

import (
	"context"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/logger"
)

// Filter applies the configured fail policy on top of a Classifier.
// With fail-open, classifier unavailability lets the message through so
// legitimate senders are never blocked by an outage; with fail-closed,
// unavailability rejects it.
type Filter struct {
	classifier Classifier
	failOpen   bool
	log        *logger.Logger
}

// NewFilter creates a new Filter
func NewFilter(classifier Classifier, failOpen bool, log *logger.Logger) *Filter {
	return &Filter{
		classifier: classifier,
		failOpen:   failOpen,
		log:        log.WithComponent("moderation"),
	}
}

// Allow reports whether the message may be delivered. The message text
// is handed to the classifier and nowhere else; it is never logged.
func (f *Filter) Allow(ctx context.Context, message string) bool {
	if f.classifier == nil {
		return true
	}

	verdict, err := f.classifier.Classify(ctx, message)
	if err != nil {
		f.log.Warn().Err(err).Bool("fail_open", f.failOpen).Msg("classifier unavailable, applying fail policy")
		return f.failOpen
	}

	return verdict == VerdictAllow
}
