package moderation

import "context"

// Verdict is the classifier's decision about a message.
type Verdict int

const (
	// VerdictAllow means the message may be delivered.
	VerdictAllow Verdict = iota
	// VerdictDeny means the message was flagged as abusive.
	VerdictDeny
)

// Classifier submits message text to an external content classifier.
// Implementations must not retain or persist the text.
type Classifier interface {
	Classify(ctx context.Context, message string) (Verdict, error)
}
